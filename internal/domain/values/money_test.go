package values

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(123.45), USD)
		require.NoError(t, err)
		assert.Equal(t, "123.45 USD", m.String())
	})

	t.Run("unknown currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "XYZ")
		assert.ErrorContains(t, err, "unsupported currency")
	})

	t.Run("not a code", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "dollars")
		assert.ErrorContains(t, err, "3-letter")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("99.99", EUR)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("99.99")))

	_, err = NewMoneyFromString("not-a-number", EUR)
	assert.ErrorContains(t, err, "invalid amount")
}

func TestMoney_Comparisons(t *testing.T) {
	low := MustNewMoneyFromFloat(100, USD)
	high := MustNewMoneyFromFloat(150, USD)
	same := MustNewMoneyFromFloat(100, USD)

	assert.True(t, high.GreaterThan(low))
	assert.False(t, low.GreaterThan(high))
	assert.False(t, low.GreaterThan(same))
	assert.True(t, low.GreaterThanOrEqual(same))
	assert.Equal(t, 0, low.Compare(same))
	assert.True(t, low.Equal(same))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	usd := MustNewMoneyFromFloat(100, USD)
	eur := MustNewMoneyFromFloat(100, EUR)

	assert.False(t, usd.SameCurrency(eur))
	assert.Panics(t, func() { usd.Compare(eur) })

	_, err := usd.Add(eur)
	assert.ErrorContains(t, err, "different currencies")

	_, err = usd.Sub(eur)
	assert.ErrorContains(t, err, "different currencies")
}

func TestMoney_Arithmetic(t *testing.T) {
	a := MustNewMoneyFromFloat(10.50, GBP)
	b := MustNewMoneyFromFloat(4.25, GBP)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "14.75 GBP", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "6.25 GBP", diff.String())
}

func TestMoney_Signs(t *testing.T) {
	assert.True(t, Zero(USD).IsZero())
	assert.True(t, MustNewMoneyFromFloat(1, USD).IsPositive())
	assert.True(t, MustNewMoneyFromFloat(-1, USD).IsNegative())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	original := MustNewMoneyFromFloat(123.45, USD)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"123.45","currency":"USD"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equal(decoded))
}

func TestMoney_UnmarshalRejectsBadCurrency(t *testing.T) {
	var m Money
	err := json.Unmarshal([]byte(`{"amount":"10","currency":"XYZ"}`), &m)
	assert.Error(t, err)
}
