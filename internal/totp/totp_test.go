package totp

import (
	"testing"
	"time"

	"github.com/pquerna/otp"
	pqtotp "github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/otpkeeper/internal/base32x"
	"github.com/dmitrijs2005/otpkeeper/internal/timex"
)

// "12345678901234567890" in Base32.
const rfcSeed = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func at(sec int64) *Generator {
	return NewGenerator(timex.FixedClock{T: time.Unix(sec, 0)})
}

func TestGenerate_RFC6238Vectors(t *testing.T) {
	tests := []struct {
		sec  int64
		want string
	}{
		{59, "94287082"},
		{1111111109, "07081804"},
		{1111111111, "14050471"},
		{1234567890, "89005924"},
		{2000000000, "69279037"},
		{20000000000, "65353130"},
	}

	for _, tt := range tests {
		got, err := at(tt.sec).Generate(rfcSeed, Params{Digits: 8, Period: 30})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "t=%d", tt.sec)
	}
}

func TestGenerate_ShortSeedFromOverview(t *testing.T) {
	got, err := at(59).Generate("GEZDGNBVGY3TQOJQ", Params{Digits: 8})
	require.NoError(t, err)
	assert.Len(t, got, 8)

	six, err := at(59).Generate(rfcSeed, Params{})
	require.NoError(t, err)
	assert.Equal(t, "287082", six)
}

func TestGenerate_MatchesIndependentImplementation(t *testing.T) {
	seed := base32x.Encode([]byte("a fairly ordinary secret"))
	for _, sec := range []int64{0, 29, 30, 1_700_000_000, 1_700_000_017} {
		ts := time.Unix(sec, 0)
		want, err := pqtotp.GenerateCodeCustom(seed, ts, pqtotp.ValidateOpts{
			Period:    30,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		require.NoError(t, err)

		got, err := GenerateAt(seed, Params{}, ts)
		require.NoError(t, err)
		assert.Equal(t, want, got, "t=%d", sec)
	}
}

func TestGenerate_StableWithinWindowAndChangesAtBoundary(t *testing.T) {
	const start = 1_700_000_010 // 1700000010 % 30 == 0
	first, err := at(start).Generate(rfcSeed, Params{})
	require.NoError(t, err)

	for s := int64(start); s < start+30; s++ {
		got, err := at(s).Generate(rfcSeed, Params{})
		require.NoError(t, err)
		assert.Equal(t, first, got, "t=%d", s)
	}

	next, err := at(start+30).Generate(rfcSeed, Params{})
	require.NoError(t, err)
	assert.NotEqual(t, first, next)
}

func TestGenerate_InvalidSeed(t *testing.T) {
	g := at(59)

	_, err := g.Generate("", Params{})
	require.ErrorIs(t, err, ErrInvalidSeed)

	_, err = g.Generate("A", Params{})
	require.ErrorIs(t, err, ErrInvalidSeed)

	_, err = g.Generate("not-base32!", Params{})
	require.ErrorIs(t, err, ErrInvalidSeed)
	require.ErrorIs(t, err, base32x.ErrInvalidCharacter)
}

func TestGenerate_DigitsRange(t *testing.T) {
	g := at(59)

	code, err := g.Generate(rfcSeed, Params{Digits: MaxDigits})
	require.NoError(t, err)
	assert.Equal(t, "094287082", code)

	for _, d := range []int{-1, 10, 12} {
		_, err := g.Generate(rfcSeed, Params{Digits: d})
		require.ErrorIs(t, err, ErrInvalidParams, "digits %d", d)
	}

	_, err = g.Generate(rfcSeed, Params{Period: -30})
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestHOTP_PanicsOnOutOfRangeDigits(t *testing.T) {
	key := []byte("12345678901234567890")
	assert.Equal(t, "287082", HOTP(key, 1, 0))
	assert.Panics(t, func() { HOTP(key, 1, 10) })
	assert.Panics(t, func() { HOTP(key, 1, -2) })
}

func TestGenerate_AcceptsSloppySeed(t *testing.T) {
	g := at(59)
	want, err := g.Generate(rfcSeed, Params{})
	require.NoError(t, err)

	got, err := g.Generate(" gezd gnbv gy3t qojq gezd gnbv gy3t qojq== ", Params{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCurrentWindow(t *testing.T) {
	assert.Equal(t, int64(1), at(59).CurrentWindow(30))
	assert.Equal(t, int64(2), at(60).CurrentWindow(30))
	assert.Equal(t, int64(0), at(0).CurrentWindow(0))
	assert.Equal(t, int64(5), at(59).CurrentWindow(10))
}

func TestSecondsRemaining(t *testing.T) {
	assert.Equal(t, 30, at(0).SecondsRemaining(30))
	assert.Equal(t, 1, at(59).SecondsRemaining(30))
	assert.Equal(t, 30, at(60).SecondsRemaining(0))

	prev := at(1000).SecondsRemaining(30)
	for s := int64(1001); s < 1100; s++ {
		cur := at(s).SecondsRemaining(30)
		require.GreaterOrEqual(t, cur, 1)
		require.LessOrEqual(t, cur, 30)
		if prev == 1 {
			require.Equal(t, 30, cur, "t=%d", s)
		} else {
			require.Equal(t, prev-1, cur, "t=%d", s)
		}
		prev = cur
	}
}

func TestHOTP_RFC4226Vectors(t *testing.T) {
	key := []byte("12345678901234567890")
	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}
	for i, w := range want {
		assert.Equal(t, w, HOTP(key, uint64(i), 6), "counter %d", i)
	}
}
