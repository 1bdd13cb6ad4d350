package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/otpkeeper/internal/common"
	"github.com/dmitrijs2005/otpkeeper/internal/server/models"
	"github.com/dmitrijs2005/otpkeeper/internal/server/services"
)

type fakeUsers struct {
	regResp *models.User
	regErr  error

	saltResp []byte
	saltErr  error

	loginResp *services.TokenPair
	loginErr  error

	refreshResp *services.TokenPair
	refreshErr  error
}

func (f *fakeUsers) Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error) {
	return f.regResp, f.regErr
}

func (f *fakeUsers) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return f.saltResp, f.saltErr
}

func (f *fakeUsers) Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeUsers) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}

// UserIDFromAccessToken accepts "tok-<user>" and reports "expired" as an
// expired token.
func (f *fakeUsers) UserIDFromAccessToken(token string) (string, error) {
	switch {
	case token == "expired":
		return "", common.ErrTokenExpired
	case strings.HasPrefix(token, "tok-"):
		return strings.TrimPrefix(token, "tok-"), nil
	default:
		return "", common.ErrInvalidToken
	}
}

type fakeAccounts struct {
	list []models.Account
	err  error

	userID   string
	id       string
	inserted models.Account
	fields   models.AccountFields
}

func (f *fakeAccounts) List(ctx context.Context, userID string) ([]models.Account, error) {
	f.userID = userID
	return f.list, f.err
}

func (f *fakeAccounts) Insert(ctx context.Context, userID string, a models.Account) (models.Account, error) {
	f.userID, f.inserted = userID, a
	if f.err != nil {
		return models.Account{}, f.err
	}
	a.ID, a.UserID = "acc-1", userID
	return a, nil
}

func (f *fakeAccounts) Update(ctx context.Context, userID, id string, fields models.AccountFields) error {
	f.userID, f.id, f.fields = userID, id, fields
	return f.err
}

func (f *fakeAccounts) Delete(ctx context.Context, userID, id string) error {
	f.userID, f.id = userID, id
	return f.err
}

type fakeIcons struct {
	slug string
	url  string
	err  error
}

func (f *fakeIcons) GetIconURL(ctx context.Context, slug string) (string, error) {
	f.slug = slug
	return f.url, f.err
}
