package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 16
	NonceSize  = 12
	KeySize    = 32
	Iterations = 100_000

	headerSize = SaltSize + NonceSize
)

var (
	// ErrMalformedEnvelope means the envelope is not base64 or too short to
	// hold a salt and a nonce.
	ErrMalformedEnvelope = errors.New("malformed envelope")
	// ErrDecryptionFailed means GCM authentication failed: wrong passphrase,
	// corruption or tampering.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// DeriveKey turns a passphrase and salt into an AES-256 key.
func DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, Iterations, KeySize, sha256.New)
}

// Cipher seals seeds into envelopes of the form
// base64(salt[16] || nonce[12] || ciphertext || tag[16]).
type Cipher struct {
	rand io.Reader
}

// NewCipher returns a Cipher drawing salts and nonces from r.
// A nil r selects crypto/rand.
func NewCipher(r io.Reader) *Cipher {
	if r == nil {
		r = rand.Reader
	}
	return &Cipher{rand: r}
}

// Encrypt seals seed under a key derived from passphrase. Every call draws
// a fresh salt and nonce.
func (c *Cipher) Encrypt(seed, passphrase string) (string, error) {
	buf := make([]byte, headerSize, headerSize+len(seed)+16)
	if _, err := io.ReadFull(c.rand, buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	salt, nonce := buf[:SaltSize], buf[SaltSize:headerSize]

	aead, err := newGCM(DeriveKey(passphrase, salt))
	if err != nil {
		return "", err
	}

	sealed := aead.Seal(buf, nonce, []byte(seed), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope produced by Encrypt.
func (c *Cipher) Decrypt(envelope, passphrase string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", errors.Join(ErrMalformedEnvelope, err)
	}
	if len(raw) < headerSize {
		return "", fmt.Errorf("%w: %d bytes", ErrMalformedEnvelope, len(raw))
	}

	salt, nonce, ct := raw[:SaltSize], raw[SaltSize:headerSize], raw[headerSize:]

	aead, err := newGCM(DeriveKey(passphrase, salt))
	if err != nil {
		return "", err
	}

	plain, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plain), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
