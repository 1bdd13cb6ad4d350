package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/otpkeeper/internal/client/models"
	"github.com/dmitrijs2005/otpkeeper/internal/client/session"
	"github.com/dmitrijs2005/otpkeeper/internal/common"
)

var errNoSuchAccount = errors.New("no such account; use the number shown by list or a record id")

// Reload fetches and decrypts every record again.
func (a *App) Reload(ctx context.Context) error {
	loaded, err := a.session.LoadAll(ctx, a.userName)
	if err != nil {
		return err
	}

	failed := 0
	for _, acc := range loaded {
		if acc.State == session.StateDecryptFailed {
			failed++
		}
	}
	fmt.Fprintf(a.out, "%d accounts loaded", len(loaded))
	if failed > 0 {
		fmt.Fprintf(a.out, ", %d could not be decrypted", failed)
	}
	fmt.Fprintln(a.out)
	return nil
}

// List prints every account with its current code.
func (a *App) List(ctx context.Context) error {
	renderCodes(a.out, a.session.Codes())
	return nil
}

// Search prints the accounts whose name or issuer contains query.
func (a *App) Search(ctx context.Context, query string) error {
	matches := map[string]bool{}
	for _, acc := range a.session.Search(query) {
		matches[acc.ID] = true
	}

	var views []session.CodeView
	for _, v := range a.session.Codes() {
		if matches[v.ID] {
			views = append(views, v)
		}
	}
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No matching accounts.")
		return nil
	}
	renderCodes(a.out, views)
	return nil
}

// Add prompts for a name, issuer and seed and stores the new account.
func (a *App) Add(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Account name", a.out)
	if err != nil {
		return err
	}
	issuer, err := getSimpleText(a.reader, "Issuer (optional)", a.out)
	if err != nil {
		return err
	}
	seed, err := getHidden(a.out, "Secret key (base32)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(seed)

	acc, err := a.session.Add(ctx, name, issuer, string(seed), a.userName)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%s)\n", label(acc.Name, acc.Issuer), acc.ID)
	return nil
}

// AddURI stores the account described by a pasted otpauth:// URI.
func (a *App) AddURI(ctx context.Context) error {
	uri, err := getHidden(a.out, "otpauth:// URI")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(uri)

	acc, err := a.session.AddURI(ctx, string(uri), a.userName)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%s)\n", label(acc.Name, acc.Issuer), acc.ID)
	return nil
}

// Edit changes the name and issuer of an account. Empty answers keep the
// current value; "-" clears the issuer.
func (a *App) Edit(ctx context.Context, ref string) error {
	acc, err := a.resolve(ref)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", acc.Name), a.out)
	if err != nil {
		return err
	}
	issuer, err := getSimpleText(a.reader, fmt.Sprintf("Issuer [%s]", acc.Issuer), a.out)
	if err != nil {
		return err
	}

	f := models.Fields{Name: acc.Name, Issuer: acc.Issuer, IconSlug: acc.IconSlug}
	if name != "" {
		f.Name = name
	}
	switch issuer {
	case "":
	case "-":
		f.Issuer, f.IconSlug = "", ""
	default:
		// a new issuer gets its icon guessed again
		f.Issuer, f.IconSlug = issuer, ""
	}

	updated, err := a.session.Edit(ctx, acc.ID, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s\n", label(updated.Name, updated.Issuer))
	return nil
}

// Delete removes an account after confirmation.
func (a *App) Delete(ctx context.Context, ref string) error {
	acc, err := a.resolve(ref)
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete %s? This cannot be undone", label(acc.Name, acc.Issuer)), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.session.Remove(ctx, acc.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", label(acc.Name, acc.Issuer))
	return nil
}

// resolve maps a 1-based list position or a record id to an account.
func (a *App) resolve(ref string) (session.Account, error) {
	if acc, ok := a.session.Account(ref); ok {
		return acc, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		list := a.session.Accounts()
		if n >= 1 && n <= len(list) {
			return list[n-1], nil
		}
	}
	return session.Account{}, fmt.Errorf("%w: %q", errNoSuchAccount, ref)
}

func label(name, issuer string) string {
	if issuer == "" {
		return name
	}
	return issuer + " / " + name
}

func renderCodes(w io.Writer, views []session.CodeView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No accounts yet. Use 'add' or 'adduri'.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tACCOUNT\tCODE\tLEFT\tID")
	for i, v := range views {
		code := v.Code
		left := fmt.Sprintf("%ds", v.Remaining)
		switch v.State {
		case session.StateReady:
			code = groupDigits(code)
		case session.StateDecryptFailed:
			left = "-"
		default:
			code, left = "...", "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, label(v.Name, v.Issuer), code, left, v.ID)
	}
	_ = tw.Flush()
}

// groupDigits splits a code in two halves for reading: "123456" -> "123 456".
func groupDigits(code string) string {
	if len(code) < 6 || strings.ContainsFunc(code, func(r rune) bool { return r < '0' || r > '9' }) {
		return code
	}
	h := len(code) / 2
	return code[:h] + " " + code[h:]
}
