package model

import (
	"encoding/json"
	"time"
)

// ContentItem is one editable piece of the public site, addressed by
// (Section, Key).  Exactly one of Value, JSON or ImageURL normally carries
// the payload; Published hides the item from the public content API.
type ContentItem struct {
	ID        uint64          `json:"id"`
	Section   string          `json:"section"`
	Key       string          `json:"key"`
	Value     *string         `json:"value"`
	JSON      json.RawMessage `json:"json"`
	ImageURL  *string         `json:"image_url"`
	Published bool            `json:"published"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
