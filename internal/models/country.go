package models

import "strings"

// CountryCode is a single ISO-3166-1 entry as it appears in the catalog.
type CountryCode struct {
	Alpha2 string `json:"alpha2" yaml:"alpha2"`
	Name   string `json:"name" yaml:"name"`
}

// NewCountryCode returns a CountryCode with the alpha2 key in canonical uppercase.
func NewCountryCode(alpha2, name string) CountryCode {
	return CountryCode{
		Alpha2: strings.ToUpper(strings.TrimSpace(alpha2)),
		Name:   strings.TrimSpace(name),
	}
}

// Lower returns the lowercase alpha2 code used when building request targets.
func (c CountryCode) Lower() string {
	return strings.ToLower(c.Alpha2)
}

// String implements fmt.Stringer.
func (c CountryCode) String() string {
	return c.Alpha2 + " (" + c.Name + ")"
}
