// internal/pricing/customization_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceCustomization_Designs(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		designs  []SelectedDesign
		settings CustomizationSettings
		want     string
	}{
		{
			name:    "category matrix",
			designs: []SelectedDesign{{DesignID: "logo", Size: SizeSmall}, {DesignID: "logo", Size: SizeLarge, Location: "back"}},
			want:    "15.00",
		},
		{
			name:    "unset tier falls back to global default",
			designs: []SelectedDesign{{DesignID: "star", Size: SizeMedium}, {DesignID: "star", Size: SizeLarge}},
			want:    "14.00",
		},
		{
			name:    "category-less design uses defaults",
			designs: []SelectedDesign{{DesignID: "plain", Size: SizeSmall}, {DesignID: "plain", Size: SizeMedium}, {DesignID: "plain", Size: SizeLarge}},
			want:    "17.00",
		},
		{
			name:    "dangling category reference uses defaults",
			designs: []SelectedDesign{{DesignID: "orphan", Size: SizeMedium}},
			want:    "5.00",
		},
		{
			name:     "store settings replace built-in defaults",
			designs:  []SelectedDesign{{DesignID: "plain", Size: SizeLarge}, {DesignID: "star", Size: SizeSmall}},
			settings: CustomizationSettings{DesignLarge: moneyPtr("8.00"), DesignSmall: moneyPtr("1.50")},
			want:     "9.50",
		},
		{
			name: "no designs",
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := LineItem{ProductID: "tee", Quantity: 1, Mode: LineModeGallery, Designs: tt.designs}
			got, err := PriceCustomization(catalog, tt.settings, line)
			require.NoError(t, err)
			assert.False(t, got.QuotePending)
			assertMoney(t, tt.want, got.DesignsAddition)
		})
	}
}

func TestPriceCustomization_MoreThanCapIsPriced(t *testing.T) {
	line := LineItem{ProductID: "tee", Quantity: 1, Mode: LineModeGallery}
	for i := 0; i < MaxGalleryDesigns+1; i++ {
		line.Designs = append(line.Designs, SelectedDesign{DesignID: "plain", Size: SizeSmall})
	}

	got, err := PriceCustomization(testCatalog(), CustomizationSettings{}, line)
	require.NoError(t, err)
	assertMoney(t, "8.00", got.DesignsAddition)
}

func TestPriceCustomization_Personalization(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		p        *Personalization
		settings CustomizationSettings
		want     string
	}{
		{name: "none", want: "0"},
		{name: "blank text", p: &Personalization{Text: "   ", Size: SizeLarge}, want: "0"},
		{name: "small default", p: &Personalization{Text: "REX", Size: SizeSmall}, want: "1.00"},
		{name: "large default", p: &Personalization{Text: "REX", Size: SizeLarge}, want: "3.00"},
		{
			name:     "large from settings",
			p:        &Personalization{Text: "REX", Size: SizeLarge},
			settings: CustomizationSettings{PersonalizationLarge: moneyPtr("4.25")},
			want:     "4.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := LineItem{ProductID: "tee", Quantity: 1, Mode: LineModeGallery, Personalization: tt.p}
			got, err := PriceCustomization(catalog, tt.settings, line)
			require.NoError(t, err)
			assertMoney(t, tt.want, got.PersonalizationAddition)
		})
	}
}

func TestPriceCustomization_UploadIsQuotePending(t *testing.T) {
	line := LineItem{
		ProductID:       "tee",
		Quantity:        2,
		Mode:            LineModeUpload,
		UploadRefs:      []string{"uploads/a.png", "uploads/b.png"},
		Instructions:    "center on chest",
		Personalization: &Personalization{Text: "REX", Size: SizeLarge},
		Designs:         []SelectedDesign{{DesignID: "missing"}},
	}

	got, err := PriceCustomization(testCatalog(), CustomizationSettings{}, line)
	require.NoError(t, err)
	assert.True(t, got.QuotePending)
	assert.True(t, got.DesignsAddition.IsZero())
	assert.True(t, got.PersonalizationAddition.IsZero())
}

func TestPriceCustomization_UnknownDesign(t *testing.T) {
	line := LineItem{ProductID: "tee", Quantity: 1, Mode: LineModeGallery, Designs: []SelectedDesign{{DesignID: "ghost", Size: SizeSmall}}}

	_, err := PriceCustomization(testCatalog(), CustomizationSettings{}, line)
	assert.ErrorIs(t, err, ErrDesignNotFound)
}
