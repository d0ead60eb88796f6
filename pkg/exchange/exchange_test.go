package exchange_test

import (
	"testing"

	"github.com/amirasaad/banking/pkg/currency"
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/exchange"
	"github.com/amirasaad/banking/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertIdentity(t *testing.T) {
	t.Parallel()
	c := exchange.NewStaticConverter()

	for _, code := range []currency.Code{currency.RON, currency.EUR, currency.USD} {
		info, err := c.Convert(123.45, code, code)
		require.NoError(t, err)
		assert.Equal(t, 123.45, info.ConvertedAmount)
		assert.Equal(t, 1.0, info.Rate)
	}
}

func TestConvertReciprocity(t *testing.T) {
	t.Parallel()
	c := exchange.NewStaticConverter()
	pairs := [][2]currency.Code{
		{currency.RON, currency.EUR},
		{currency.RON, currency.USD},
		{currency.EUR, currency.USD},
	}

	for _, p := range pairs {
		forward, err := c.GetRate(p[0], p[1])
		require.NoError(t, err)
		backward, err := c.GetRate(p[1], p[0])
		require.NoError(t, err)
		assert.InDelta(t, 1.0, forward*backward, 1e-12,
			"%s<->%s rates must be reciprocal", p[0], p[1])

		there, err := c.Convert(100, p[0], p[1])
		require.NoError(t, err)
		back, err := c.Convert(there.ConvertedAmount, p[1], p[0])
		require.NoError(t, err)
		assert.InDelta(t, 100, back.ConvertedAmount, 1e-9)
	}
}

func TestConvertScenario(t *testing.T) {
	t.Parallel()
	c := exchange.NewStaticConverter()

	info, err := c.Convert(100, currency.RON, currency.EUR)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, info.ConvertedAmount, 1e-9)
	assert.Equal(t, currency.RON, info.OriginalCurrency)
	assert.Equal(t, currency.EUR, info.ConvertedCurrency)

	rate, err := c.GetRate(currency.EUR, currency.RON)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rate)
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()
	c := exchange.NewStaticConverter()

	t.Run("negative amount", func(t *testing.T) {
		t.Parallel()
		_, err := c.Convert(-1, currency.RON, currency.EUR)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("unknown currency", func(t *testing.T) {
		t.Parallel()
		_, err := c.Convert(10, "XBT", currency.RON)
		assert.ErrorIs(t, err, currency.ErrUnsupported)
		assert.False(t, c.IsSupported("XBT", currency.RON))
	})

	t.Run("registered currency without a rate", func(t *testing.T) {
		require.NoError(t, currency.Register("CHF", currency.Meta{Decimals: 2, Symbol: "CHF"}))
		_, err := c.GetRate("CHF", currency.RON)
		assert.ErrorIs(t, err, exchange.ErrUnsupportedPair)
		assert.False(t, c.IsSupported("CHF", currency.RON))
	})
}

func TestConvertMoney(t *testing.T) {
	t.Parallel()
	c := exchange.NewStaticConverter()

	t.Run("ron to eur", func(t *testing.T) {
		t.Parallel()
		m, err := money.New(100, currency.RON)
		require.NoError(t, err)
		got, err := exchange.ConvertMoney(c, m, currency.EUR)
		require.NoError(t, err)
		assert.Equal(t, "20.00", got.Format())
		assert.Equal(t, currency.EUR, got.Currency())
	})

	t.Run("ron to usd rounds at the cent", func(t *testing.T) {
		t.Parallel()
		m, err := money.New(100, currency.RON)
		require.NoError(t, err)
		got, err := exchange.ConvertMoney(c, m, currency.USD)
		require.NoError(t, err)
		assert.Equal(t, "21.28", got.Format())
	})

	t.Run("identity returns the value unchanged", func(t *testing.T) {
		t.Parallel()
		m, err := money.New(42.42, currency.USD)
		require.NoError(t, err)
		got, err := exchange.ConvertMoney(c, m, currency.USD)
		require.NoError(t, err)
		assert.True(t, got.Equals(m))
	})

	t.Run("negative value refused", func(t *testing.T) {
		t.Parallel()
		m, err := money.New(-1, currency.RON)
		require.NoError(t, err)
		_, err = exchange.ConvertMoney(c, m, currency.EUR)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}
