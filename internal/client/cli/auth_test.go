package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/otpkeeper/internal/client/models"
	"github.com/dmitrijs2005/otpkeeper/internal/client/services"
)

func TestRegister_Success(t *testing.T) {
	ta := newTestApp(t, "alice@example.org\n")
	f := &fakeAuth{}
	ta.auth = f
	stubHidden(t, "secret")

	require.NoError(t, ta.Register(context.Background()))
	assert.Equal(t, "alice@example.org", f.regUser)
	assert.Equal(t, "secret", string(f.regPass))
	assert.Contains(t, ta.buf.String(), "Success!")
}

func TestRegister_ErrorPropagates(t *testing.T) {
	ta := newTestApp(t, "alice@example.org\n")
	ta.auth = &fakeAuth{regErr: errors.New("taken")}
	stubHidden(t, "secret")

	require.EqualError(t, ta.Register(context.Background()), "taken")
}

func TestRegister_LocalModeRejected(t *testing.T) {
	ta := newTestApp(t, "")
	require.ErrorIs(t, ta.Register(context.Background()), errRemoteOnly)
}

func TestLogin_LocalModeOpensVault(t *testing.T) {
	ta := newTestApp(t, "  A@X.com \n")
	ta.store.records = []models.Record{
		{ID: "1", Name: "one", Envelope: seal(t, rfcSeed, testEmail)},
		{ID: "2", Name: "two", Envelope: seal(t, rfcSeed, "b@x.com")},
	}

	require.NoError(t, ta.Login(context.Background()))
	assert.Equal(t, testEmail, ta.userName)
	assert.True(t, ta.isLoggedIn())
	assert.Contains(t, ta.buf.String(), "2 accounts loaded, 1 could not be decrypted")

	seed, err := ta.session.Seed("1")
	require.NoError(t, err)
	assert.Equal(t, rfcSeed, seed)
}

func TestLogin_RemoteAuthenticatesFirst(t *testing.T) {
	ta := newTestApp(t, "a@x.com\n")
	f := &fakeAuth{}
	ta.auth = f
	ta.mode = ModeOffline
	prompts := stubHidden(t, "pw")

	require.NoError(t, ta.Login(context.Background()))
	assert.Equal(t, testEmail, f.loginUser)
	assert.Equal(t, "pw", string(f.loginPass))
	assert.Equal(t, []string{"Enter password"}, *prompts)
	assert.Equal(t, ModeOnline, ta.Mode())
	assert.Contains(t, ta.buf.String(), "0 accounts loaded")
}

func TestLogin_RemoteFailureLeavesLoggedOut(t *testing.T) {
	ta := newTestApp(t, "a@x.com\n")
	ta.auth = &fakeAuth{loginErr: errors.New("invalid credentials")}
	ta.mode = ModeOffline
	stubHidden(t, "pw")

	require.Error(t, ta.Login(context.Background()))
	assert.False(t, ta.isLoggedIn())
	assert.Equal(t, ModeOffline, ta.Mode())
}

func TestLogin_InvalidEmail(t *testing.T) {
	ta := newTestApp(t, "not-an-email\n")
	require.ErrorIs(t, ta.Login(context.Background()), services.ErrInvalidEmail)
	assert.False(t, ta.isLoggedIn())
}

func TestLogin_SwitchingUsersLogsOutFirst(t *testing.T) {
	ta := newTestApp(t, "b@x.com\n")
	ta.userName = testEmail
	ta.store.records = []models.Record{{ID: "1", Name: "one", Envelope: seal(t, rfcSeed, testEmail)}}
	_, err := ta.session.LoadAll(context.Background(), testEmail)
	require.NoError(t, err)

	require.NoError(t, ta.Login(context.Background()))
	assert.Equal(t, "b@x.com", ta.userName)
	assert.Contains(t, ta.buf.String(), "Logged out.")

	_, err = ta.session.Seed("1")
	assert.Error(t, err, "seeds opened for the previous user must be gone")
}

func TestLogout(t *testing.T) {
	ta := newTestApp(t, "")
	f := &fakeAuth{}
	ta.auth = f
	ta.userName = testEmail
	ta.store.records = []models.Record{{ID: "1", Name: "one", Envelope: seal(t, rfcSeed, testEmail)}}
	_, err := ta.session.LoadAll(context.Background(), testEmail)
	require.NoError(t, err)

	require.NoError(t, ta.Logout(context.Background()))
	assert.True(t, f.logoutCalled)
	assert.False(t, ta.isLoggedIn())
	assert.Empty(t, ta.session.Accounts())
}
