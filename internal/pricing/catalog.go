// internal/pricing/catalog.go
package pricing

import "github.com/shopspring/decimal"

// ResolveBasePrice selects the garment unit price for a line: the variant's
// override when present, otherwise the product price.
func ResolveBasePrice(catalog Catalog, line LineItem) (decimal.Decimal, Product, *Variant, error) {
	product, ok := catalog.Products[line.ProductID]
	if !ok {
		return decimal.Zero, Product{}, nil, ErrProductNotFound
	}

	if line.VariantID == "" {
		return product.Price, product, nil, nil
	}

	variant, ok := catalog.Variants[line.VariantID]
	if !ok || variant.ProductID != product.ID {
		return decimal.Zero, Product{}, nil, ErrVariantNotFound
	}

	if variant.PriceOverride != nil {
		return *variant.PriceOverride, product, &variant, nil
	}
	return product.Price, product, &variant, nil
}
