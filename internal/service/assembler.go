package service

import (
	"fmt"
	"strings"

	"anvi/internal/model"
	"anvi/internal/utils"
)

// maxDescriptionLen bounds the description rendered into context blocks and
// cards; longer text is cut and marked with an ellipsis.
const maxDescriptionLen = 200

// firstNonEmpty evaluates an ordered list of optional fields left to right
// and returns the first non-empty value. This is the one place the
// field-preference policy for projections lives.
func firstNonEmpty(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func truncateDescription(desc string) string {
	if len(desc) > maxDescriptionLen {
		return strings.TrimRight(desc[:maxDescriptionLen], " ") + "..."
	}
	return desc
}

// FormatContext renders up to max places as fixed-layout text blocks joined
// by a separator line. Zero places yields the empty string, which callers
// must treat as a hard signal to skip generation.
func FormatContext(places []model.Place, max int) string {
	if len(places) == 0 {
		return ""
	}
	if len(places) > max {
		places = places[:max]
	}

	blocks := make([]string, 0, len(places))
	for i, p := range places {
		name := firstNonEmpty(p.VendorName, p.Name)
		if name == "" {
			name = "Unknown"
		}
		category := firstNonEmpty(p.Category)
		area := firstNonEmpty(p.AreaName, p.ZoneName)
		rating := ""
		if p.StarRating != nil {
			rating = fmt.Sprintf("%.1f", *p.StarRating)
		}
		address := firstNonEmpty(p.Address, p.Location, p.AreaName)
		desc := truncateDescription(firstNonEmpty(p.ShortDesc, p.Description))

		blocks = append(blocks, fmt.Sprintf(
			"[%d]\nName: %s\nCategory: %s\nArea: %s\nRating: %s\nAddress: %s\nDescription: %s\n----",
			i+1, name, category, area, rating, address, desc,
		))
	}

	return strings.TrimSpace(strings.Join(blocks, "\n"))
}

// BuildCards projects up to max places into result cards. Each output field
// follows a fixed fallback chain; card order preserves catalog order, there
// is no independent re-ranking.
func BuildCards(places []model.Place, max int, cdnBase string) []model.Card {
	if len(places) > max {
		places = places[:max]
	}

	cards := make([]model.Card, 0, len(places))
	for _, p := range places {
		image := firstNonEmpty(p.ImageURL)
		if image == "" && p.ThumbnailImage != nil {
			image = utils.BuildImageURL(cdnBase, *p.ThumbnailImage)
		}

		cards = append(cards, model.Card{
			Title:       firstNonEmpty(p.VendorName, p.Name),
			Subtitle:    firstNonEmpty(p.AreaName, p.ZoneName),
			Rating:      p.StarRating,
			Address:     firstNonEmpty(p.Address, p.Location, p.AreaName),
			Description: truncateDescription(firstNonEmpty(p.ShortDesc, p.Description)),
			Image:       image,
		})
	}
	return cards
}

// FormatAttributeAnswer produces the single-attribute answer sentence for the
// entity bypass path. A missing value gets an explicit "not available"
// phrasing instead of an empty answer.
func FormatAttributeAnswer(place *model.Place, attribute string) string {
	name := place.DisplayName()
	label := strings.ReplaceAll(attribute, "_", " ")

	value, ok := place.Attr(attribute)
	if !ok || value == "" {
		return fmt.Sprintf("Sorry, the %s of %s is not available.", label, name)
	}
	return fmt.Sprintf("The %s of %s is %s.", label, name, value)
}
