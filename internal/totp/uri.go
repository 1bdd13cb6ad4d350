package totp

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/otpkeeper/internal/base32x"
)

var ErrInvalidURI = errors.New("invalid otpauth uri")

// Key is the content of an otpauth:// URI.
type Key struct {
	Type   string
	Issuer string
	Name   string
	Secret string
	Params Params
}

// ParseURI reads an otpauth://TYPE/LABEL?secret=SEED&issuer=ISSUER URI.
// The label may carry the issuer as an "Issuer:Name" prefix; the query
// parameter wins when both are present.
func ParseURI(raw string) (Key, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Key{}, errors.Join(ErrInvalidURI, err)
	}
	if !strings.EqualFold(u.Scheme, "otpauth") {
		return Key{}, fmt.Errorf("%w: scheme %q", ErrInvalidURI, u.Scheme)
	}

	q := u.Query()
	k := Key{
		Type:   strings.ToLower(u.Host),
		Secret: base32x.Canonicalize(q.Get("secret")),
	}
	if k.Secret == "" {
		return Key{}, fmt.Errorf("%w: missing secret", ErrInvalidURI)
	}

	label := strings.TrimPrefix(u.Path, "/")
	if issuer, name, ok := strings.Cut(label, ":"); ok {
		k.Issuer = strings.TrimSpace(issuer)
		k.Name = strings.TrimSpace(name)
	} else {
		k.Name = strings.TrimSpace(label)
	}
	if v := q.Get("issuer"); v != "" {
		k.Issuer = v
	}

	if v := q.Get("digits"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxDigits {
			return Key{}, fmt.Errorf("%w: digits %q", ErrInvalidURI, v)
		}
		k.Params.Digits = n
	}
	if v := q.Get("period"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Key{}, fmt.Errorf("%w: period %q", ErrInvalidURI, v)
		}
		k.Params.Period = n
	}

	return k, nil
}

// URI renders k in the Key Uri Format understood by authenticator apps.
func (k Key) URI() string {
	p := k.Params.withDefaults()

	label := url.PathEscape(k.Name)
	if k.Issuer != "" {
		label = url.PathEscape(k.Issuer) + ":" + label
	}

	q := url.Values{}
	q.Set("secret", base32x.Canonicalize(k.Secret))
	if k.Issuer != "" {
		q.Set("issuer", k.Issuer)
	}
	q.Set("algorithm", "SHA1")
	q.Set("digits", strconv.Itoa(p.Digits))
	q.Set("period", strconv.Itoa(p.Period))

	typ := k.Type
	if typ == "" {
		typ = "totp"
	}
	return fmt.Sprintf("otpauth://%s/%s?%s", typ, label, q.Encode())
}
