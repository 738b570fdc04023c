package config

import "time"

// ProbeConfig controls how each country request is sent
type ProbeConfig struct {
	Concurrency        int               `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"min=1,max=256"`
	TimeoutSecs        int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1,max=300"`
	Method             string            `json:"method,omitempty" yaml:"method,omitempty" validate:"omitempty,oneof=GET HEAD POST"`
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	MaxDetailBytes     int               `json:"max_detail_bytes,omitempty" yaml:"max_detail_bytes,omitempty" validate:"min=0"`
	MaxBodyBytes       int64             `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty" validate:"min=0"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	FollowRedirects    bool              `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"min=0"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	CustomHeaders      map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
}

// NewDefaultProbeConfig creates default probe configuration
func NewDefaultProbeConfig() ProbeConfig {
	return ProbeConfig{
		Concurrency:     DefaultProbeConcurrency,
		TimeoutSecs:     DefaultProbeTimeoutSecs,
		Method:          DefaultProbeMethod,
		UserAgent:       DefaultProbeUserAgent,
		MaxDetailBytes:  DefaultProbeMaxDetailBytes,
		MaxBodyBytes:    DefaultProbeMaxBodyBytes,
		EnableHTTP2:     true,
		FollowRedirects: DefaultProbeFollowRedirects,
		MaxRedirects:    DefaultProbeMaxRedirects,
		CustomHeaders:   map[string]string{},
	}
}

// Timeout returns the per-request timeout as a duration
func (pc *ProbeConfig) Timeout() time.Duration {
	return time.Duration(pc.TimeoutSecs) * time.Second
}
