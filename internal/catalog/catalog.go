// Package catalog provides the bundled ISO 3166-1 country table.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/models"
)

//go:embed countries.yaml
var countriesYAML []byte

type countryFile struct {
	Countries []models.CountryCode `yaml:"countries"`
}

// Catalog is an immutable, alpha2-sorted set of country codes.
type Catalog struct {
	codes []models.CountryCode
	index map[string]int
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// New parses the embedded country table.
func New() (*Catalog, error) {
	var file countryFile
	if err := yaml.Unmarshal(countriesYAML, &file); err != nil {
		return nil, common.WrapError(err, "failed to parse embedded country table")
	}
	return NewFromCodes(file.Countries)
}

// Default returns the process-wide catalog parsed from the embedded table.
func Default() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = New()
	})
	return defaultCatalog, defaultCatalogErr
}

// NewFromCodes builds a catalog from arbitrary entries. Codes are normalized
// to uppercase and sorted; duplicates and blank entries are rejected.
func NewFromCodes(codes []models.CountryCode) (*Catalog, error) {
	c := &Catalog{
		codes: make([]models.CountryCode, 0, len(codes)),
		index: make(map[string]int, len(codes)),
	}

	for _, raw := range codes {
		code := models.NewCountryCode(raw.Alpha2, raw.Name)
		if len(code.Alpha2) != 2 {
			return nil, common.NewValidationError("alpha2", raw.Alpha2, "must be exactly two letters")
		}
		if code.Name == "" {
			return nil, common.NewValidationError("name", code.Alpha2, "display name is empty")
		}
		if _, dup := c.index[code.Alpha2]; dup {
			return nil, common.NewValidationError("alpha2", code.Alpha2, "duplicate country code")
		}
		c.index[code.Alpha2] = -1
		c.codes = append(c.codes, code)
	}

	sort.Slice(c.codes, func(i, j int) bool {
		return c.codes[i].Alpha2 < c.codes[j].Alpha2
	})
	for i, code := range c.codes {
		c.index[code.Alpha2] = i
	}

	return c, nil
}

// List returns a copy of every entry, sorted by alpha2 ascending.
func (c *Catalog) List() []models.CountryCode {
	out := make([]models.CountryCode, len(c.codes))
	copy(out, c.codes)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.codes)
}

// Lookup finds an entry by alpha2 code, case-insensitively.
func (c *Catalog) Lookup(alpha2 string) (models.CountryCode, bool) {
	i, ok := c.index[strings.ToUpper(strings.TrimSpace(alpha2))]
	if !ok {
		return models.CountryCode{}, false
	}
	return c.codes[i], true
}

// Subset returns a catalog restricted to the given codes. Unknown codes are an error.
func (c *Catalog) Subset(alpha2s ...string) (*Catalog, error) {
	selected := make([]models.CountryCode, 0, len(alpha2s))
	seen := make(map[string]struct{}, len(alpha2s))

	for _, raw := range alpha2s {
		code, ok := c.Lookup(raw)
		if !ok {
			return nil, common.NewInputError("country code", raw, "not an ISO 3166-1 alpha-2 code")
		}
		if _, dup := seen[code.Alpha2]; dup {
			continue
		}
		seen[code.Alpha2] = struct{}{}
		selected = append(selected, code)
	}

	if len(selected) == 0 {
		return nil, common.NewInputError("countries", strings.Join(alpha2s, ","), "no country codes selected")
	}

	return NewFromCodes(selected)
}

// ParseCodeList splits a comma separated list such as "ad, ae,GB".
func ParseCodeList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String implements fmt.Stringer.
func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d countries)", len(c.codes))
}
