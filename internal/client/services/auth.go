package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/otpkeeper/internal/common"
	"github.com/dmitrijs2005/otpkeeper/internal/cryptox"
)

const saltSize = 32

var (
	ErrInvalidEmail  = errors.New("invalid email")
	ErrEmptyPassword = errors.New("password is required")
)

// AuthClient is the part of the server client used for authentication.
type AuthClient interface {
	Register(ctx context.Context, username string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) error
	Logout()
	Ping(ctx context.Context) error
	Close() error
}

// AuthService defines authentication operations for the CLI.
//
// The password proves identity to the server and nothing else: it is
// stretched into a master key, reduced to a verifier and discarded. The
// vault passphrase is the normalized email.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout()
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client AuthClient
}

func NewAuthService(client AuthClient) AuthService {
	return &authService{client: client}
}

// NormalizeEmail trims and lowercases an email address. The result is used
// both as the login name and as the vault passphrase, so every caller must
// pass addresses through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail requires a non-empty local part and domain around one '@'.
func ValidateEmail(email string) error {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

func verifierFor(password, salt []byte) []byte {
	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	return cryptox.MakeVerifier(key)
}

// Register creates a server account. A fresh random salt is generated and
// only the salt and verifier are sent.
func (a *authService) Register(ctx context.Context, email string, password []byte) error {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) == 0 {
		return ErrEmptyPassword
	}

	salt := common.GenerateRandByteArray(saltSize)
	if err := a.client.Register(ctx, email, salt, verifierFor(password, salt)); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Login fetches the user's salt, derives the verifier candidate and asks
// the server for a token pair.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) == 0 {
		return ErrEmptyPassword
	}

	salt, err := a.client.GetSalt(ctx, email)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	if err := a.client.Login(ctx, email, verifierFor(password, salt)); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}

func (a *authService) Logout() {
	a.client.Logout()
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close() error {
	return a.client.Close()
}
