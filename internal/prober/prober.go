// Package prober issues the single request made for each country code.
package prober

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/httpclient"
	"github.com/aleister1102/geoprobe/internal/models"
	"github.com/aleister1102/geoprobe/internal/urlhandler"
)

// DefaultMaxDetailBytes bounds the response text kept in a failed outcome.
const DefaultMaxDetailBytes = 1024

// Doer executes one HTTP request.
type Doer interface {
	Do(req *httpclient.HTTPRequest) (*httpclient.HTTPResponse, error)
}

// Config controls how targets are built and requested.
type Config struct {
	Method         string
	Timeout        time.Duration
	MaxDetailBytes int
	Headers        map[string]string
	Rule           urlhandler.TargetRule
}

// DefaultConfig returns a GET prober with a 10s timeout and the auto targeting rule.
func DefaultConfig() Config {
	return Config{
		Method:         http.MethodGet,
		Timeout:        10 * time.Second,
		MaxDetailBytes: DefaultMaxDetailBytes,
		Rule:           urlhandler.DefaultTargetRule(),
	}
}

// Prober turns one (template, country) pair into a ProbeOutcome.
// It is safe for concurrent use when its Doer is.
type Prober struct {
	client Doer
	config Config
	logger zerolog.Logger
	now    func() time.Time
}

// Option customizes a Prober.
type Option func(*Prober)

// WithClock overrides the clock used to timestamp outcomes.
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		p.now = now
	}
}

// New creates a Prober. Zero config values fall back to DefaultConfig.
func New(client Doer, config Config, logger zerolog.Logger, opts ...Option) *Prober {
	defaults := DefaultConfig()
	if config.Method == "" {
		config.Method = defaults.Method
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxDetailBytes <= 0 {
		config.MaxDetailBytes = defaults.MaxDetailBytes
	}

	p := &Prober{
		client: client,
		config: config,
		logger: logger.With().Str("component", "Prober").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe performs exactly one request for code against targetTemplate.
// It never returns an error: every failure is captured in the outcome.
func (p *Prober) Probe(ctx context.Context, targetTemplate string, code models.CountryCode) models.ProbeOutcome {
	targetURL, err := urlhandler.BuildCountryURL(targetTemplate, code.Alpha2, p.config.Rule)
	if err != nil {
		p.logger.Warn().Err(err).Str("code", code.Alpha2).Msg("Could not build country target")
		return models.NewTransportFailure(code, targetTemplate, err, 0, p.now())
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.client.Do(&httpclient.HTTPRequest{
		URL:     targetURL,
		Method:  p.config.Method,
		Headers: p.config.Headers,
		Context: reqCtx,
	})
	elapsed := time.Since(start)

	if err != nil {
		p.logger.Debug().Err(err).Str("code", code.Alpha2).Str("url", targetURL).Msg("Probe transport failure")
		return models.NewTransportFailure(code, targetURL, err, elapsed, p.now())
	}

	outcome := models.NewProbeOutcome(code, targetURL, resp.StatusCode, p.describe(resp), elapsed, p.now())
	p.logger.Debug().
		Str("code", code.Alpha2).
		Int("status_code", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("Probe completed")
	return outcome
}

// describe returns the response text used as the failure detail.
func (p *Prober) describe(resp *httpclient.HTTPResponse) string {
	detail := strings.TrimSpace(string(resp.Body))
	if detail == "" {
		detail = resp.Status
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return detail
	}
	return truncateUTF8(detail, p.config.MaxDetailBytes)
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
