package urlhandler

import (
	"net/url"
	"strings"

	"github.com/aleister1102/geoprobe/internal/common"
)

// TargetMode selects how a country code is combined with the URL template.
type TargetMode string

const (
	// TargetModeAuto substitutes the placeholder when present, otherwise adds a query parameter.
	TargetModeAuto TargetMode = "auto"
	// TargetModePlaceholder requires the placeholder to appear in the template.
	TargetModePlaceholder TargetMode = "placeholder"
	// TargetModeQuery always sets the country query parameter.
	TargetModeQuery TargetMode = "query"
	// TargetModePath appends the code as the last path segment.
	TargetModePath TargetMode = "path"
	// TargetModeSubdomain prefixes the host with the code.
	TargetModeSubdomain TargetMode = "subdomain"
)

// DefaultQueryParam is the query parameter name used by the query and auto modes.
const DefaultQueryParam = "country"

// ValidTargetModes lists every accepted TargetMode value.
var ValidTargetModes = []TargetMode{
	TargetModeAuto,
	TargetModePlaceholder,
	TargetModeQuery,
	TargetModePath,
	TargetModeSubdomain,
}

// IsValidTargetMode reports whether mode names a known TargetMode.
func IsValidTargetMode(mode string) bool {
	for _, m := range ValidTargetModes {
		if string(m) == mode {
			return true
		}
	}
	return false
}

// TargetRule is the combination rule applied to every country code of a run.
type TargetRule struct {
	Mode        TargetMode
	Placeholder string
	QueryParam  string
}

// DefaultTargetRule returns the auto rule with the default placeholder and query parameter.
func DefaultTargetRule() TargetRule {
	return TargetRule{
		Mode:        TargetModeAuto,
		Placeholder: DefaultPlaceholder,
		QueryParam:  DefaultQueryParam,
	}
}

func (r TargetRule) withDefaults() TargetRule {
	if r.Mode == "" {
		r.Mode = TargetModeAuto
	}
	if r.Placeholder == "" {
		r.Placeholder = DefaultPlaceholder
	}
	if r.QueryParam == "" {
		r.QueryParam = DefaultQueryParam
	}
	return r
}

// BuildCountryURL combines template and the alpha2 code according to rule.
// The code is always inserted in lowercase.
func BuildCountryURL(template, alpha2 string, rule TargetRule) (string, error) {
	rule = rule.withDefaults()
	template = strings.TrimSpace(template)
	code := strings.ToLower(strings.TrimSpace(alpha2))
	if code == "" {
		return "", common.NewInputError("country code", alpha2, "code is empty")
	}

	hasPlaceholder := strings.Contains(template, rule.Placeholder)

	switch rule.Mode {
	case TargetModeAuto:
		if hasPlaceholder {
			return strings.ReplaceAll(template, rule.Placeholder, code), nil
		}
		return withQueryParam(template, rule.QueryParam, code)
	case TargetModePlaceholder:
		if !hasPlaceholder {
			return "", common.NewInputError("url", template, "template does not contain placeholder "+rule.Placeholder)
		}
		return strings.ReplaceAll(template, rule.Placeholder, code), nil
	case TargetModeQuery:
		return withQueryParam(template, rule.QueryParam, code)
	case TargetModePath:
		parsedURL, err := parseTemplate(template)
		if err != nil {
			return "", err
		}
		return parsedURL.JoinPath(code).String(), nil
	case TargetModeSubdomain:
		parsedURL, err := parseTemplate(template)
		if err != nil {
			return "", err
		}
		parsedURL.Host = code + "." + parsedURL.Host
		return parsedURL.String(), nil
	default:
		return "", common.NewInputError("targeting mode", string(rule.Mode), "unknown targeting mode")
	}
}

func withQueryParam(template, param, code string) (string, error) {
	parsedURL, err := parseTemplate(template)
	if err != nil {
		return "", err
	}
	query := parsedURL.Query()
	query.Set(param, code)
	parsedURL.RawQuery = query.Encode()
	return parsedURL.String(), nil
}

func parseTemplate(template string) (*url.URL, error) {
	parsedURL, err := url.Parse(template)
	if err != nil {
		return nil, common.NewInputError("url", template, "could not parse URL: "+err.Error())
	}
	if parsedURL.Host == "" {
		return nil, common.NewInputError("url", template, "URL lacks a valid hostname")
	}
	return parsedURL, nil
}
