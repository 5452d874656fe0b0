package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Image ordered image reference stored as JSONB
type Image struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
	Alt      string `json:"alt,omitempty"`
}

// Images list of images kept in a single JSONB column
type Images []Image

// Sorted returns a copy ordered by position
func (im Images) Sorted() Images {
	out := make(Images, len(im))
	copy(out, im)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Value implements driver.Valuer
func (im Images) Value() (driver.Value, error) {
	if im == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(im)
}

// Scan implements sql.Scanner
func (im *Images) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*im = Images{}
		return nil
	case []byte:
		return json.Unmarshal(v, im)
	case string:
		return json.Unmarshal([]byte(v), im)
	default:
		return fmt.Errorf("domain: cannot scan %T into Images", src)
	}
}
