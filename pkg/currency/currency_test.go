package currency_test

import (
	"testing"

	"github.com/amirasaad/banking/pkg/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want currency.Code
	}{
		{"already canonical", "RON", currency.RON},
		{"lowercase", "eur", currency.EUR},
		{"padded", "  usd ", currency.USD},
		{"mixed case", "RoN", currency.RON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, currency.Normalize(tt.raw))
		})
	}
}

func TestCodeIsValidFormat(t *testing.T) {
	t.Parallel()
	assert.True(t, currency.Code("RON").IsValidFormat())
	assert.True(t, currency.Code("XYZ").IsValidFormat())
	assert.False(t, currency.Code("ron").IsValidFormat())
	assert.False(t, currency.Code("RO").IsValidFormat())
	assert.False(t, currency.Code("RONN").IsValidFormat())
	assert.False(t, currency.Code("R0N").IsValidFormat())
	assert.False(t, currency.Code("").IsValidFormat())
}

func TestRegistryDefaults(t *testing.T) {
	t.Parallel()
	r := currency.NewRegistry()

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []currency.Code{currency.EUR, currency.RON, currency.USD}, r.List())

	for _, code := range []currency.Code{currency.RON, currency.EUR, currency.USD} {
		assert.True(t, r.IsSupported(code), "expected %s to be supported", code)
		meta, err := r.Get(code)
		require.NoError(t, err)
		assert.Equal(t, 2, meta.Decimals)
		assert.NotEmpty(t, meta.Symbol)
	}
}

func TestRegistryGetErrors(t *testing.T) {
	t.Parallel()
	r := currency.NewRegistry()

	t.Run("malformed code", func(t *testing.T) {
		t.Parallel()
		_, err := r.Get("ron")
		assert.ErrorIs(t, err, currency.ErrInvalidFormat)
	})

	t.Run("well-formed but unknown", func(t *testing.T) {
		t.Parallel()
		_, err := r.Get("GBP")
		assert.ErrorIs(t, err, currency.ErrUnsupported)
		assert.False(t, r.IsSupported("GBP"))
	})
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()
	r := currency.NewRegistry()

	require.NoError(t, r.Register("CHF", currency.Meta{Decimals: 2, Symbol: "CHF"}))
	assert.True(t, r.IsSupported("CHF"))
	assert.Equal(t, 4, r.Count())

	t.Run("rejects malformed code", func(t *testing.T) {
		err := r.Register("francs", currency.Meta{Decimals: 2})
		assert.ErrorIs(t, err, currency.ErrInvalidFormat)
	})

	t.Run("rejects out-of-range decimals", func(t *testing.T) {
		err := r.Register("BHD", currency.Meta{Decimals: 12})
		assert.ErrorIs(t, err, currency.ErrInvalidFormat)
	})
}

func TestMinorUnits(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2, currency.MinorUnits(currency.RON))
	assert.Equal(t, currency.DefaultDecimals, currency.MinorUnits("ZZZ"))
}
