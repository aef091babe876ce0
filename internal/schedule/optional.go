package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseOptional reads a spots/price value as posted by the admin form:
// a number, a numeric string, or "" / null for blank.
func parseOptional(raw json.RawMessage) (*float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil, nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
		if s == "" {
			return nil, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %s", s)
	}
	return &f, nil
}

func decodeOptional(spotsRaw, priceRaw json.RawMessage) (*int, *float64, error) {
	spots, err := parseOptional(spotsRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("spots: %w", err)
	}
	price, err := parseOptional(priceRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("price: %w", err)
	}
	var sp *int
	if spots != nil {
		n := int(*spots)
		sp = &n
	}
	return sp, price, nil
}

// UnmarshalJSON accepts "" for the optional numeric fields.
func (c *Class) UnmarshalJSON(b []byte) error {
	type plain Class
	var aux struct {
		plain
		Spots json.RawMessage `json:"spots"`
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	spots, price, err := decodeOptional(aux.Spots, aux.Price)
	if err != nil {
		return err
	}
	*c = Class(aux.plain)
	c.Spots, c.Price = spots, price
	return nil
}

// UnmarshalJSON accepts "" for the optional numeric fields.
func (e *Event) UnmarshalJSON(b []byte) error {
	type plain Event
	var aux struct {
		plain
		Spots json.RawMessage `json:"spots"`
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	spots, price, err := decodeOptional(aux.Spots, aux.Price)
	if err != nil {
		return err
	}
	*e = Event(aux.plain)
	e.Spots, e.Price = spots, price
	return nil
}
