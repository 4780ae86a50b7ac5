package models

import "time"

// Category is a classification label for donated products.
// Names are unique case-insensitively; the casing of the first insertion is
// the one that gets stored. TimesUsed counts products filed under the
// category, not lookups.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TimesUsed int64     `json:"timesUsed"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
