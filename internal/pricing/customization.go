// internal/pricing/customization.go
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CustomizationPrice struct {
	DesignsAddition         decimal.Decimal
	PersonalizationAddition decimal.Decimal
	QuotePending            bool
}

// PriceCustomization prices the designs and personalization attached to a
// line. Upload-mode lines are never priced here: they are quote-pending and
// resolved manually.
//
// The gallery cap of MaxGalleryDesigns is the caller's contract; extra
// designs are priced, not rejected.
func PriceCustomization(catalog Catalog, settings CustomizationSettings, line LineItem) (CustomizationPrice, error) {
	if line.Mode == LineModeUpload {
		return CustomizationPrice{
			DesignsAddition:         decimal.Zero,
			PersonalizationAddition: decimal.Zero,
			QuotePending:            true,
		}, nil
	}

	designs := decimal.Zero
	for _, selected := range line.Designs {
		price, err := designPrice(catalog, settings, selected)
		if err != nil {
			return CustomizationPrice{}, err
		}
		designs = designs.Add(price)
	}

	return CustomizationPrice{
		DesignsAddition:         roundMoney(designs),
		PersonalizationAddition: roundMoney(personalizationPrice(settings, line.Personalization)),
	}, nil
}

func designPrice(catalog Catalog, settings CustomizationSettings, selected SelectedDesign) (decimal.Decimal, error) {
	design, ok := catalog.Designs[selected.DesignID]
	if !ok {
		return decimal.Zero, ErrDesignNotFound
	}

	var category *DesignCategory
	if design.CategoryID != "" {
		if c, ok := catalog.DesignCategories[design.CategoryID]; ok {
			category = &c
		}
	}

	switch selected.Size {
	case SizeLarge:
		fallback := valueOr(settings.DesignLarge, defaultDesignLarge)
		if category != nil {
			return valueOr(category.Large, fallback), nil
		}
		return fallback, nil
	case SizeMedium:
		fallback := valueOr(settings.DesignMedium, defaultDesignMedium)
		if category != nil {
			return valueOr(category.Medium, fallback), nil
		}
		return fallback, nil
	default:
		fallback := valueOr(settings.DesignSmall, defaultDesignSmall)
		if category != nil {
			return valueOr(category.Small, fallback), nil
		}
		return fallback, nil
	}
}

func personalizationPrice(settings CustomizationSettings, p *Personalization) decimal.Decimal {
	if p == nil || strings.TrimSpace(p.Text) == "" {
		return decimal.Zero
	}
	if p.Size == SizeLarge {
		return valueOr(settings.PersonalizationLarge, defaultPersonalizationLarge)
	}
	return valueOr(settings.PersonalizationSmall, defaultPersonalizationSmall)
}
