package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewProbeOutcome_SucceededMatchesStatus(t *testing.T) {
	code := NewCountryCode("ad", "Andorra")
	now := time.Now()

	tests := []struct {
		name        string
		statusCode  int
		detail      string
		wantSuccess bool
		wantDetail  string
	}{
		{name: "ok", statusCode: 200, detail: "ignored", wantSuccess: true, wantDetail: ""},
		{name: "not found", statusCode: 404, detail: "missing", wantSuccess: false, wantDetail: "missing"},
		{name: "no content is not 200", statusCode: 204, detail: "204 No Content", wantSuccess: false, wantDetail: "204 No Content"},
		{name: "server error", statusCode: 500, detail: "boom", wantSuccess: false, wantDetail: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewProbeOutcome(code, "https://example.com", tt.statusCode, tt.detail, time.Millisecond, now)
			assert.Equal(t, tt.wantSuccess, o.Succeeded)
			assert.Equal(t, o.StatusCode == 200, o.Succeeded)
			assert.Equal(t, tt.wantDetail, o.Detail)
			assert.Equal(t, "AD", o.Code)
			assert.Equal(t, "Andorra", o.Country)
			assert.False(t, o.IsTransportFailure())
		})
	}
}

func TestNewTransportFailure(t *testing.T) {
	code := NewCountryCode("AE", "United Arab Emirates")

	o := NewTransportFailure(code, "http://127.0.0.1:1", errors.New("connection refused"), 0, time.Now())
	assert.False(t, o.Succeeded)
	assert.Equal(t, StatusTransportFailure, o.StatusCode)
	assert.True(t, o.IsTransportFailure())
	assert.Equal(t, "connection refused", o.Detail)

	o = NewTransportFailure(code, "http://127.0.0.1:1", nil, 0, time.Now())
	assert.NotEmpty(t, o.Detail)
}

func TestRunReport_Counts(t *testing.T) {
	code := NewCountryCode("AD", "Andorra")
	start := time.Now()
	report := &RunReport{
		Outcomes: []ProbeOutcome{
			NewProbeOutcome(code, "", 200, "", 0, start),
			NewProbeOutcome(code, "", 404, "nope", 0, start),
			NewTransportFailure(code, "", errors.New("dial"), 0, start),
		},
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}

	assert.Equal(t, 1, report.SucceededCount())
	assert.Equal(t, 2, report.FailedCount())
	assert.Equal(t, 2*time.Second, report.Duration())

	var nilReport *RunReport
	assert.Zero(t, nilReport.SucceededCount())
	assert.Zero(t, nilReport.Duration())
}

func TestCountryCode_Lower(t *testing.T) {
	c := NewCountryCode(" gb ", " United Kingdom of Great Britain and Northern Ireland ")
	assert.Equal(t, "GB", c.Alpha2)
	assert.Equal(t, "gb", c.Lower())
	assert.Equal(t, "United Kingdom of Great Britain and Northern Ireland", c.Name)
}
