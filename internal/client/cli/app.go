package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/otpkeeper/internal/client/client"
	"github.com/dmitrijs2005/otpkeeper/internal/client/config"
	"github.com/dmitrijs2005/otpkeeper/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/otpkeeper/internal/client/services"
	"github.com/dmitrijs2005/otpkeeper/internal/client/session"
	"github.com/dmitrijs2005/otpkeeper/internal/cryptox"
	"github.com/dmitrijs2005/otpkeeper/internal/logging"
	"github.com/dmitrijs2005/otpkeeper/internal/timex"
	"github.com/dmitrijs2005/otpkeeper/internal/totp"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	ModeLocal   Mode = "local"
)

const (
	pingTimeout     = 3 * time.Second
	downloadTimeout = 10 * time.Second
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	auth    services.AuthService
	icons   *services.IconService
	export  *services.ExportService
	session *session.Session
	closers []func() error

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	// userName is the normalized email of the signed-in user; it doubles
	// as the vault passphrase and is never persisted.
	userName string

	mu   sync.Mutex
	mode Mode
}

// NewApp builds the client for cfg: a gRPC-backed session in remote mode,
// or one over the SQLite file in local mode.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	a := &App{
		config:      cfg,
		logger:      logger.With("module", "cli"),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdout.Fd())),
	}

	var (
		store session.RecordStore
		src   services.IconSource
	)

	switch cfg.Mode {
	case config.ModeLocal:
		db, err := accounts.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		store = accounts.NewSQLiteRepository(db, cfg.Profile)
		a.mode = ModeLocal
	default:
		apiClient, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, apiClient.Close)
		a.auth = services.NewAuthService(apiClient)
		store, src = apiClient, apiClient
		a.mode = ModeOffline
	}

	a.session = session.New(store, cryptox.NewCipher(nil), totp.NewGenerator(timex.SystemClock{}),
		session.WithLogger(logger))
	a.icons = services.NewIconService(src, &http.Client{Timeout: downloadTimeout},
		filepath.Join(cfg.OutputDir, "icons"), logger)
	a.export = services.NewExportService(filepath.Join(cfg.OutputDir, "exports"))

	return a, nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to OTPKeeper (type 'help' for commands)")

	if a.auth != nil {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close wipes the session and releases the store.
func (a *App) Close() error {
	a.session.Close()

	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	s += string(a.Mode())
	return fmt.Sprintf("(%s)", s)
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode between online and offline until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	check := func() {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := a.auth.Ping(pctx); err != nil {
			a.setMode(ModeOffline)
			return
		}
		a.setMode(ModeOnline)
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
