package catalog

import (
	"strings"
	"testing"

	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct("ThinkPad X1", "14 inch ultrabook", valueobject.NewMoneyUSDFromFloat(1299.00), 10)
	require.NoError(t, err)

	assert.Equal(t, "ThinkPad X1", product.Name)
	assert.Equal(t, int64(10), product.Quantity)
	assert.Equal(t, int64(0), product.Sold)
	assert.Equal(t, 1, product.Version)

	events := product.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeProductCreated, events[0].EventType())
}

func TestNewProductValidation(t *testing.T) {
	price := valueobject.NewMoneyUSDFromFloat(10)

	_, err := NewProduct("", "", price, 1)
	assert.Error(t, err)

	_, err = NewProduct(strings.Repeat("x", 201), "", price, 1)
	assert.Error(t, err)

	_, err = NewProduct("ok", "", valueobject.NewMoneyUSDFromFloat(-1), 1)
	assert.Error(t, err)

	_, err = NewProduct("ok", "", price, -5)
	assert.Error(t, err)
}

func TestProductSetPrice(t *testing.T) {
	product, err := NewProduct("Mouse", "", valueobject.NewMoneyUSDFromFloat(25.00), 5)
	require.NoError(t, err)
	product.ClearDomainEvents()

	require.NoError(t, product.SetPrice(valueobject.NewMoneyUSDFromFloat(19.99)))
	assert.Equal(t, "19.99", product.Price.StringFixed(2))
	assert.Equal(t, 2, product.Version)

	events := product.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeProductPriceChanged, events[0].EventType())

	err = product.SetPrice(valueobject.NewMoneyUSDFromFloat(-1))
	assert.Error(t, err)
}

func TestProductRestock(t *testing.T) {
	product, err := NewProduct("Keyboard", "", valueobject.NewMoneyUSDFromFloat(49.00), 2)
	require.NoError(t, err)

	require.NoError(t, product.Restock(8))
	assert.Equal(t, int64(10), product.Quantity)

	assert.ErrorIs(t, product.Restock(0), shared.ErrInvalidQuantity)
	assert.ErrorIs(t, product.Restock(-3), shared.ErrInvalidQuantity)
}

func TestProductCanFulfill(t *testing.T) {
	product, err := NewProduct("Monitor", "", valueobject.NewMoneyUSDFromFloat(199.00), 3)
	require.NoError(t, err)

	assert.True(t, product.CanFulfill(3))
	assert.False(t, product.CanFulfill(4))
	assert.False(t, product.CanFulfill(0))
	assert.False(t, product.IsOutOfStock())

	product.Quantity = 0
	assert.True(t, product.IsOutOfStock())
}
