package types

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Address is a delivery or billing address. Persisted as jsonb and carried
// verbatim on order submissions.
type Address struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email,omitempty"`
	Street   string  `json:"street"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Country  string  `json:"country"`
	Pincode  string  `json:"pincode"`
	Landmark *string `json:"landmark,omitempty"`
}

var addressRequiredFields = []struct {
	name  string
	value func(Address) string
}{
	{"name", func(a Address) string { return a.Name }},
	{"phone", func(a Address) string { return a.Phone }},
	{"street", func(a Address) string { return a.Street }},
	{"city", func(a Address) string { return a.City }},
	{"state", func(a Address) string { return a.State }},
	{"pincode", func(a Address) string { return a.Pincode }},
}

// Validate reports every missing required field, not just the first.
func (a Address) Validate() error {
	var errs error
	for _, field := range addressRequiredFields {
		if strings.TrimSpace(field.value(a)) == "" {
			errs = multierr.Append(errs, fmt.Errorf("address: missing %s", field.name))
		}
	}
	return errs
}

// MissingFields lists the names of required fields that are empty.
func (a Address) MissingFields() []string {
	var missing []string
	for _, field := range addressRequiredFields {
		if strings.TrimSpace(field.value(a)) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Normalized returns a copy with surrounding whitespace trimmed and the
// country defaulted to IN.
func (a Address) Normalized() Address {
	out := Address{
		Name:    strings.TrimSpace(a.Name),
		Phone:   strings.TrimSpace(a.Phone),
		Email:   strings.TrimSpace(a.Email),
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		Country: strings.TrimSpace(a.Country),
		Pincode: strings.TrimSpace(a.Pincode),
	}
	if out.Country == "" {
		out.Country = "IN"
	}
	if a.Landmark != nil {
		landmark := strings.TrimSpace(*a.Landmark)
		if landmark != "" {
			out.Landmark = &landmark
		}
	}
	return out
}
