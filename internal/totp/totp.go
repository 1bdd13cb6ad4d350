// Package totp computes RFC 6238 time-based one-time passwords from Base32
// seeds. The package keeps no state beyond the injected clock and performs
// no scheduling; callers decide when to recompute.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/otpkeeper/internal/base32x"
	"github.com/dmitrijs2005/otpkeeper/internal/timex"
)

const (
	DefaultDigits = 6
	DefaultPeriod = 30
	// MaxDigits is the longest code a 31-bit truncated HMAC can fill.
	MaxDigits = 9
)

var (
	ErrInvalidSeed   = errors.New("invalid seed")
	ErrInvalidParams = errors.New("invalid code parameters")
)

var pow10 = [...]uint32{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000}

// Params controls code length and window size. Zero values select
// DefaultDigits and DefaultPeriod.
type Params struct {
	Digits int
	Period int
}

// Validate reports ErrInvalidParams for digits outside 0..MaxDigits or a
// negative period.
func (p Params) Validate() error {
	if p.Digits < 0 || p.Digits > MaxDigits {
		return fmt.Errorf("%w: digits %d, want 1..%d", ErrInvalidParams, p.Digits, MaxDigits)
	}
	if p.Period < 0 {
		return fmt.Errorf("%w: period %d", ErrInvalidParams, p.Period)
	}
	return nil
}

func (p Params) withDefaults() Params {
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period <= 0 {
		p.Period = DefaultPeriod
	}
	return p
}

type Generator struct {
	clock timex.Clock
}

// NewGenerator returns a Generator reading time from clock. A nil clock
// falls back to the system clock.
func NewGenerator(clock timex.Clock) *Generator {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	return &Generator{clock: clock}
}

// CurrentWindow is the HOTP counter for the present instant.
func (g *Generator) CurrentWindow(period int) int64 {
	return window(g.clock.Now(), Params{Period: period}.withDefaults().Period)
}

// SecondsRemaining reports how long the current code stays valid, in [1, period].
func (g *Generator) SecondsRemaining(period int) int {
	period = Params{Period: period}.withDefaults().Period
	sec := g.clock.Now().Unix()
	rem := sec % int64(period)
	if rem < 0 {
		rem += int64(period)
	}
	return period - int(rem)
}

// Generate returns the code for seed at the present instant.
func (g *Generator) Generate(seed string, p Params) (string, error) {
	return GenerateAt(seed, p, g.clock.Now())
}

// GenerateAt returns the code for seed in the window containing t.
// Out-of-range parameters fail with ErrInvalidParams.
func GenerateAt(seed string, p Params, t time.Time) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	key, err := base32x.Decode(seed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	if len(key) == 0 {
		return "", fmt.Errorf("%w: decodes to zero bytes", ErrInvalidSeed)
	}

	p = p.withDefaults()
	return HOTP(key, uint64(window(t, p.Period)), p.Digits), nil
}

// HOTP implements RFC 4226 with HMAC-SHA1 and dynamic truncation. Zero
// digits means DefaultDigits; anything outside 0..MaxDigits panics.
func HOTP(key []byte, counter uint64, digits int) string {
	if digits == 0 {
		digits = DefaultDigits
	}
	if digits < 0 || digits > MaxDigits {
		panic(fmt.Sprintf("totp: HOTP digits %d out of range 1..%d", digits, MaxDigits))
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%0*d", digits, code%pow10[digits])
}

func window(t time.Time, period int) int64 {
	sec := t.Unix()
	w := sec / int64(period)
	if sec%int64(period) < 0 {
		w--
	}
	return w
}
