package service

import (
	"strings"
	"testing"

	"anvi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func samplePlace() model.Place {
	return model.Place{
		VendorName:  strPtr("Hotel Sunrise"),
		Category:    strPtr("hotel"),
		AreaName:    strPtr("Nashik Road"),
		StarRating:  f64Ptr(4.5),
		Address:     strPtr("12 MG Road, Nashik"),
		Description: strPtr("A comfortable stay close to the city center."),
	}
}

func TestFormatContext(t *testing.T) {
	t.Run("empty input yields empty string", func(t *testing.T) {
		assert.Equal(t, "", FormatContext(nil, 8))
		assert.Equal(t, "", FormatContext([]model.Place{}, 8))
	})

	t.Run("renders fixed layout blocks", func(t *testing.T) {
		ctx := FormatContext([]model.Place{samplePlace()}, 8)

		assert.Contains(t, ctx, "[1]")
		assert.Contains(t, ctx, "Name: Hotel Sunrise")
		assert.Contains(t, ctx, "Category: hotel")
		assert.Contains(t, ctx, "Area: Nashik Road")
		assert.Contains(t, ctx, "Rating: 4.5")
		assert.Contains(t, ctx, "Address: 12 MG Road, Nashik")
		assert.Contains(t, ctx, "----")
	})

	t.Run("caps the number of blocks", func(t *testing.T) {
		places := make([]model.Place, 12)
		for i := range places {
			places[i] = samplePlace()
		}
		ctx := FormatContext(places, 8)

		assert.Contains(t, ctx, "[8]")
		assert.NotContains(t, ctx, "[9]")
	})

	t.Run("truncates long descriptions", func(t *testing.T) {
		p := samplePlace()
		p.Description = strPtr(strings.Repeat("x", 300))
		ctx := FormatContext([]model.Place{p}, 8)

		assert.Contains(t, ctx, strings.Repeat("x", 200)+"...")
		assert.NotContains(t, ctx, strings.Repeat("x", 201))
	})

	t.Run("missing name falls back to Unknown", func(t *testing.T) {
		ctx := FormatContext([]model.Place{{}}, 8)
		assert.Contains(t, ctx, "Name: Unknown")
	})
}

func TestBuildCards(t *testing.T) {
	t.Run("projects fields with fallback chains", func(t *testing.T) {
		p := samplePlace()
		p.Address = nil
		p.Location = strPtr("Near College Road")
		p.ThumbnailImage = strPtr("/images/sunrise.jpg")

		cards := BuildCards([]model.Place{p}, 8, "https://cdn.example.com/")
		require.Len(t, cards, 1)

		card := cards[0]
		assert.Equal(t, "Hotel Sunrise", card.Title)
		assert.Equal(t, "Nashik Road", card.Subtitle)
		require.NotNil(t, card.Rating)
		assert.Equal(t, 4.5, *card.Rating)
		assert.Equal(t, "Near College Road", card.Address, "address falls back to location")
		assert.Equal(t, "https://cdn.example.com/images/sunrise.jpg", card.Image)
	})

	t.Run("address falls back to area name last", func(t *testing.T) {
		p := samplePlace()
		p.Address = nil
		cards := BuildCards([]model.Place{p}, 8, "")
		require.Len(t, cards, 1)
		assert.Equal(t, "Nashik Road", cards[0].Address)
	})

	t.Run("image url wins over thumbnail", func(t *testing.T) {
		p := samplePlace()
		p.ImageURL = strPtr("https://img.example.com/full.jpg")
		p.ThumbnailImage = strPtr("/images/sunrise.jpg")
		cards := BuildCards([]model.Place{p}, 8, "https://cdn.example.com/")
		require.Len(t, cards, 1)
		assert.Equal(t, "https://img.example.com/full.jpg", cards[0].Image)
	})

	t.Run("preserves catalog order and cap", func(t *testing.T) {
		places := make([]model.Place, 10)
		for i := range places {
			p := samplePlace()
			p.VendorName = strPtr(string(rune('A' + i)))
			places[i] = p
		}
		cards := BuildCards(places, 8, "")
		require.Len(t, cards, 8)
		assert.Equal(t, "A", cards[0].Title)
		assert.Equal(t, "H", cards[7].Title)
	})
}

func TestFormatAttributeAnswer(t *testing.T) {
	t.Run("typed column value", func(t *testing.T) {
		p := samplePlace()
		got := FormatAttributeAnswer(&p, "rating")
		assert.Equal(t, "The rating of Hotel Sunrise is 4.5.", got)
	})

	t.Run("jsonb attribute value", func(t *testing.T) {
		p := samplePlace()
		p.Attributes = model.JSONMap{"pet_friendly": true}
		got := FormatAttributeAnswer(&p, "pet_friendly")
		assert.Equal(t, "The pet friendly of Hotel Sunrise is yes.", got)
	})

	t.Run("missing value reads as not available", func(t *testing.T) {
		p := samplePlace()
		got := FormatAttributeAnswer(&p, "wifi")
		assert.Equal(t, "Sorry, the wifi of Hotel Sunrise is not available.", got)
	})
}
