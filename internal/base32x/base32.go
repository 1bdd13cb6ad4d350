// Package base32x decodes TOTP seeds. The decoder is deliberately lenient
// about presentation (case, whitespace, padding) and strict about the
// alphabet: anything outside A-Z2-7 is rejected.
package base32x

import (
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

var ErrInvalidCharacter = errors.New("invalid base32 character")

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Canonicalize uppercases text and removes whitespace and '=' padding.
func Canonicalize(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '=' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, text)
}

// Decode maps the canonical form of text to bytes, five bits per symbol,
// most significant first. Bits of a trailing partial byte are discarded.
func Decode(text string) ([]byte, error) {
	s := Canonicalize(text)
	out := make([]byte, 0, len(s)*5/8)

	var buf uint32
	bits := 0
	for i, r := range s {
		v := strings.IndexRune(alphabet, r)
		if v < 0 {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, r, i)
		}
		buf = buf<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
		}
	}
	return out, nil
}

// Encode returns the unpadded RFC 4648 form of b.
func Encode(b []byte) string {
	return encoding.EncodeToString(b)
}
