package cryptox

import (
	"bytes"
	stdpbkdf2 "crypto/pbkdf2"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = "JBSWY3DPEHPK3PXP"

func TestDeriveKey_MatchesStdlib(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltSize)
	want, err := stdpbkdf2.Key(sha256.New, "a@x.com", salt, Iterations, KeySize)
	require.NoError(t, err)

	got := DeriveKey("a@x.com", salt)
	assert.Len(t, got, KeySize)
	assert.Equal(t, want, got)
}

func TestCipher_RoundTrip(t *testing.T) {
	c := NewCipher(nil)
	for _, s := range []string{seed, "", "ünïcode seed", string(bytes.Repeat([]byte("A"), 300))} {
		env, err := c.Encrypt(s, "a@x.com")
		require.NoError(t, err)

		got, err := c.Decrypt(env, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestCipher_EnvelopeLayout(t *testing.T) {
	random := bytes.Repeat([]byte{0xAB}, SaltSize+NonceSize)
	c := NewCipher(bytes.NewReader(random))

	env, err := c.Encrypt(seed, "a@x.com")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(env)
	require.NoError(t, err)
	require.Len(t, raw, SaltSize+NonceSize+len(seed)+16)
	assert.Equal(t, random, raw[:SaltSize+NonceSize])
}

func TestCipher_FreshSaltAndNonce(t *testing.T) {
	c := NewCipher(nil)
	a, err := c.Encrypt(seed, "a@x.com")
	require.NoError(t, err)
	b, err := c.Encrypt(seed, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	rawA, _ := base64.StdEncoding.DecodeString(a)
	rawB, _ := base64.StdEncoding.DecodeString(b)
	assert.NotEqual(t, rawA[:SaltSize], rawB[:SaltSize])
	assert.NotEqual(t, rawA[SaltSize:SaltSize+NonceSize], rawB[SaltSize:SaltSize+NonceSize])
}

func TestCipher_RandomFailure(t *testing.T) {
	c := NewCipher(bytes.NewReader([]byte{1, 2, 3}))
	_, err := c.Encrypt(seed, "a@x.com")
	require.Error(t, err)
}

func TestCipher_TamperDetection(t *testing.T) {
	c := NewCipher(nil)
	env, err := c.Encrypt(seed, "a@x.com")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(env)
	require.NoError(t, err)

	for i := SaltSize + NonceSize; i < len(raw); i++ {
		mutated := bytes.Clone(raw)
		mutated[i] ^= 0x01

		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(mutated), "a@x.com")
		require.ErrorIs(t, err, ErrDecryptionFailed, "byte %d", i)
	}
}

func TestCipher_WrongPassphrase(t *testing.T) {
	c := NewCipher(nil)
	env, err := c.Encrypt(seed, "a@x.com")
	require.NoError(t, err)

	_, err = c.Decrypt(env, "b@x.com")
	require.ErrorIs(t, err, ErrDecryptionFailed)
	assert.False(t, errors.Is(err, ErrMalformedEnvelope))
}

func TestCipher_Malformed(t *testing.T) {
	c := NewCipher(nil)
	tests := []struct {
		name string
		env  string
	}{
		{name: "not base64", env: "%%%not-base64%%%"},
		{name: "empty", env: ""},
		{name: "27 bytes", env: base64.StdEncoding.EncodeToString(make([]byte, 27))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.env, "a@x.com")
			require.ErrorIs(t, err, ErrMalformedEnvelope)
			assert.False(t, errors.Is(err, ErrDecryptionFailed))
		})
	}
}

func TestCipher_HeaderOnlyIsAuthFailure(t *testing.T) {
	c := NewCipher(nil)
	_, err := c.Decrypt(base64.StdEncoding.EncodeToString(make([]byte, 28)), "a@x.com")
	require.ErrorIs(t, err, ErrDecryptionFailed)
}
