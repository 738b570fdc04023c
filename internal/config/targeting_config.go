package config

import "github.com/aleister1102/geoprobe/internal/urlhandler"

// TargetingConfig decides where the country code goes in the target URL
type TargetingConfig struct {
	Mode        string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,targetmode"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	QueryParam  string `json:"query_param,omitempty" yaml:"query_param,omitempty"`
}

// NewDefaultTargetingConfig creates default targeting configuration
func NewDefaultTargetingConfig() TargetingConfig {
	return TargetingConfig{
		Mode:        string(urlhandler.TargetModeAuto),
		Placeholder: urlhandler.DefaultPlaceholder,
		QueryParam:  urlhandler.DefaultQueryParam,
	}
}

// Rule converts the config into a targeting rule, filling empty fields
// with defaults
func (tc *TargetingConfig) Rule() urlhandler.TargetRule {
	rule := urlhandler.DefaultTargetRule()
	if tc.Mode != "" {
		rule.Mode = urlhandler.TargetMode(tc.Mode)
	}
	if tc.Placeholder != "" {
		rule.Placeholder = tc.Placeholder
	}
	if tc.QueryParam != "" {
		rule.QueryParam = tc.QueryParam
	}
	return rule
}
