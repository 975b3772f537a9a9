package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Place represents a catalog record (hotel or villa). Well-known fields are
// typed columns; everything else the ingestion pipeline collects lives in the
// Attributes JSONB column and is read by key.
type Place struct {
	ID             int64           `json:"id" db:"id"`
	VendorName     *string         `json:"vendor_name,omitempty" db:"vendor_name"`
	Name           *string         `json:"name,omitempty" db:"name"`
	Category       *string         `json:"category,omitempty" db:"category"`
	AreaName       *string         `json:"area_name,omitempty" db:"area_name"`
	ZoneName       *string         `json:"zone_name,omitempty" db:"zone_name"`
	StarRating     *float64        `json:"star_rating,omitempty" db:"star_rating"`
	Address        *string         `json:"address,omitempty" db:"address"`
	Location       *string         `json:"location,omitempty" db:"location"`
	Phone          *string         `json:"phone,omitempty" db:"phone"`
	Price          *float64        `json:"price,omitempty" db:"price"`
	Description    *string         `json:"description,omitempty" db:"description"`
	ShortDesc      *string         `json:"short_description,omitempty" db:"short_description"`
	ImageURL       *string         `json:"image_url,omitempty" db:"image_url"`
	ThumbnailImage *string         `json:"thumbnail_image,omitempty" db:"thumbnail_image"`
	Attributes     JSONMap         `json:"attributes,omitempty" db:"attributes"`
	Embedding      pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Attr returns the value for a detected attribute key, rendered as a display
// string. Typed columns are checked first, then the Attributes JSONB column.
// The second return is false when the record has no value for the key.
func (p *Place) Attr(key string) (string, bool) {
	switch key {
	case "rating":
		if p.StarRating != nil {
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", *p.StarRating), "0"), "."), true
		}
	case "address":
		if p.Address != nil && *p.Address != "" {
			return *p.Address, true
		}
	case "phone":
		if p.Phone != nil && *p.Phone != "" {
			return *p.Phone, true
		}
	case "price":
		if p.Price != nil {
			return fmt.Sprintf("%.0f", *p.Price), true
		}
	case "vendor_name":
		if p.VendorName != nil && *p.VendorName != "" {
			return *p.VendorName, true
		}
	}

	if v, ok := p.Attributes[key]; ok && v != nil {
		return renderAttrValue(v), true
	}
	return "", false
}

// DisplayName returns the best available name for the place
func (p *Place) DisplayName() string {
	if p.VendorName != nil && *p.VendorName != "" {
		return *p.VendorName
	}
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}
	return "Unknown"
}

func renderAttrValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		// JSON numbers decode as float64; drop the fraction when whole
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// JSONMap represents a JSON object field
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
