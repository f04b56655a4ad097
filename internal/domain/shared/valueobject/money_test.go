package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
	require.NoError(t, err)
	assert.Equal(t, USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))

	_, err = NewMoney(decimal.Zero, "")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyUSDFromFloat(10.00)
	b := NewMoneyUSDFromFloat(25.00)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "35.00", sum.StringFixed(2))

	diff, err := b.Subtract(a)
	require.NoError(t, err)
	assert.Equal(t, "15.00", diff.StringFixed(2))

	product := a.MultiplyByInt(3)
	assert.Equal(t, "30.00", product.StringFixed(2))
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	usd := NewMoneyUSDFromFloat(10)
	eur := Zero(EUR)

	_, err := usd.Add(eur)
	assert.Error(t, err)

	_, err = usd.Subtract(eur)
	assert.Error(t, err)

	_, err = usd.LessThan(eur)
	assert.Error(t, err)
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(45.00)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("99.99"))
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.Equal(t, "99.99", m.StringFixed(2))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
