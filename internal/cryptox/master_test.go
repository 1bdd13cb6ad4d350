package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveMasterKey(password, salt)
	key2 := DeriveMasterKey(password, salt)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 32)
}

func TestDeriveMasterKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	assert.NotEqual(t,
		DeriveMasterKey(password, []byte("salt-1")),
		DeriveMasterKey(password, []byte("salt-2")))
}

func TestMakeVerifier(t *testing.T) {
	v := MakeVerifier([]byte("k"))
	assert.Len(t, v, 32)
	assert.Equal(t, v, MakeVerifier([]byte("k")))
	assert.NotEqual(t, v, MakeVerifier([]byte("j")))
}
