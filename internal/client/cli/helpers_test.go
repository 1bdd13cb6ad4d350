package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/otpkeeper/internal/client/config"
	"github.com/dmitrijs2005/otpkeeper/internal/client/models"
	"github.com/dmitrijs2005/otpkeeper/internal/client/services"
	"github.com/dmitrijs2005/otpkeeper/internal/client/session"
	"github.com/dmitrijs2005/otpkeeper/internal/common"
	"github.com/dmitrijs2005/otpkeeper/internal/cryptox"
	"github.com/dmitrijs2005/otpkeeper/internal/logging"
	"github.com/dmitrijs2005/otpkeeper/internal/timex"
	"github.com/dmitrijs2005/otpkeeper/internal/totp"
)

const (
	testEmail = "a@x.com"
	rfcSeed   = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
)

// memStore is an in-memory record store, newest first.
type memStore struct {
	records []models.Record
	nextID  int

	deleted []string
	updated []models.Fields
}

func (m *memStore) List(ctx context.Context) ([]models.Record, error) {
	return append([]models.Record(nil), m.records...), nil
}

func (m *memStore) Insert(ctx context.Context, n models.NewRecord) (models.Record, error) {
	m.nextID++
	rec := models.Record{
		ID: fmt.Sprintf("id-%d", m.nextID), Name: n.Name, Issuer: n.Issuer, IconSlug: n.IconSlug,
		Envelope: n.Envelope, Digits: n.Digits, Period: n.Period,
	}
	m.records = append([]models.Record{rec}, m.records...)
	return rec, nil
}

func (m *memStore) Update(ctx context.Context, id string, f models.Fields) error {
	m.updated = append(m.updated, f)
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	for i, r := range m.records {
		if r.ID == id {
			m.deleted = append(m.deleted, id)
			m.records = append(m.records[:i:i], m.records[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type testApp struct {
	*App
	store    *memStore
	buf      *bytes.Buffer
	iconsDir string
}

// newTestApp returns a local-mode App reading input and frozen at t=59s.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	store := &memStore{}
	out := &bytes.Buffer{}
	dir := t.TempDir()
	iconsDir := filepath.Join(dir, "icons")

	gen := totp.NewGenerator(timex.FixedClock{T: time.Unix(59, 0)})

	a := &App{
		config:  &config.Config{RefreshInterval: 10 * time.Millisecond},
		logger:  logging.Discard(),
		session: session.New(store, cryptox.NewCipher(nil), gen),
		icons:   services.NewIconService(nil, http.DefaultClient, iconsDir, nil),
		export:  services.NewExportService(filepath.Join(dir, "exports")),
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     out,
		mode:    ModeLocal,
	}
	return &testApp{App: a, store: store, buf: out, iconsDir: iconsDir}
}

func seal(t *testing.T, seed, passphrase string) string {
	t.Helper()
	env, err := cryptox.NewCipher(nil).Encrypt(seed, passphrase)
	require.NoError(t, err)
	return env
}

// stubHidden answers hidden prompts from answers, in order.
func stubHidden(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	orig := getHidden
	getHidden = func(_ io.Writer, prompt string) ([]byte, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return nil, io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
	t.Cleanup(func() { getHidden = orig })
	return &prompts
}

type fakeAuth struct {
	regUser string
	regPass []byte
	regErr  error

	loginUser string
	loginPass []byte
	loginErr  error

	pingErr error

	logoutCalled bool
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}
func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) error {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	return f.loginErr
}
func (f *fakeAuth) Logout()                        { f.logoutCalled = true }
func (f *fakeAuth) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeAuth) Close() error                   { return nil }
