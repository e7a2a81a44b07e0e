// internal/pricing/catalog_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBasePrice(t *testing.T) {
	catalog := testCatalog()

	t.Run("product price without variant", func(t *testing.T) {
		price, product, variant, err := ResolveBasePrice(catalog, LineItem{ProductID: "tee"})
		require.NoError(t, err)
		assert.Equal(t, "tee", product.ID)
		assert.Nil(t, variant)
		assertMoney(t, "20.00", price)
	})

	t.Run("variant without override uses product price", func(t *testing.T) {
		price, _, variant, err := ResolveBasePrice(catalog, LineItem{ProductID: "tee", VariantID: "tee-red-m"})
		require.NoError(t, err)
		require.NotNil(t, variant)
		assertMoney(t, "20.00", price)
	})

	t.Run("variant override wins", func(t *testing.T) {
		price, _, _, err := ResolveBasePrice(catalog, LineItem{ProductID: "tee", VariantID: "tee-xl"})
		require.NoError(t, err)
		assertMoney(t, "24.00", price)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, _, _, err := ResolveBasePrice(catalog, LineItem{ProductID: "nope"})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("unknown variant", func(t *testing.T) {
		_, _, _, err := ResolveBasePrice(catalog, LineItem{ProductID: "tee", VariantID: "nope"})
		assert.ErrorIs(t, err, ErrVariantNotFound)
	})

	t.Run("variant of another product", func(t *testing.T) {
		_, _, _, err := ResolveBasePrice(catalog, LineItem{ProductID: "hoodie", VariantID: "tee-red-m"})
		assert.ErrorIs(t, err, ErrVariantNotFound)
	})
}
