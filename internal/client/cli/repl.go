package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Add(ctx context.Context) error
	AddURI(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	Watch(ctx context.Context) error
	Export(ctx context.Context, ref string) error
	Icon(ctx context.Context, ref string) error
	Reload(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, search <q>, add, adduri, edit <n|id>, delete <n|id>, " +
		"(w)atch, export <n|id>, icon <n|id>, reload, logout, exit"
)

var errUsage = errors.New("usage")

// runREPL starts a simple read–eval–print loop for the OTPKeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Account commands take either the position
// shown by list or a record id. The loop exits on EOF, on "exit"/"quit",
// or when ctx is done.
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("otp %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			if errors.Is(err, errUsage) {
				printlnFn(err.Error())
			} else {
				printlnFn("error:", err)
			}
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !isAccountCommand(cmd) {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}

	switch cmd {
	case "l", "list":
		return a.List(ctx)
	case "search":
		return a.Search(ctx, strings.Join(args, " "))
	case "add":
		return a.Add(ctx)
	case "adduri":
		return a.AddURI(ctx)
	case "w", "watch":
		return a.Watch(ctx)
	case "reload":
		return a.Reload(ctx)
	case "logout":
		return a.Logout(ctx)
	}

	if len(args) != 1 {
		return fmt.Errorf("%w: %s <n|id>", errUsage, cmd)
	}
	switch cmd {
	case "edit":
		return a.Edit(ctx, args[0])
	case "delete":
		return a.Delete(ctx, args[0])
	case "export":
		return a.Export(ctx, args[0])
	default:
		return a.Icon(ctx, args[0])
	}
}

func isAccountCommand(cmd string) bool {
	switch cmd {
	case "l", "list", "search", "add", "adduri", "edit", "delete", "w", "watch",
		"export", "icon", "reload", "logout":
		return true
	}
	return false
}
