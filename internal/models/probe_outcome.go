package models

import (
	"net/http"
	"time"
)

// StatusTransportFailure is the sentinel status code recorded when no HTTP
// response was received (DNS failure, refused connection, timeout).
const StatusTransportFailure = 0

// ProbeOutcome is the recorded result of probing one country code once.
//
// Values are built through NewProbeOutcome or NewTransportFailure so that
// Succeeded always agrees with StatusCode. Outcomes are passed by value and
// never modified after creation.
type ProbeOutcome struct {
	Code       string    `json:"code"`
	Country    string    `json:"country"`
	TargetURL  string    `json:"target_url"`
	StatusCode int       `json:"status_code"`
	Succeeded  bool      `json:"succeeded"`
	Detail     string    `json:"detail,omitempty"`
	DurationMS float64   `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewProbeOutcome builds the outcome for a request that produced an HTTP
// response. The detail text is dropped for successful responses.
func NewProbeOutcome(code CountryCode, targetURL string, statusCode int, detail string, duration time.Duration, completedAt time.Time) ProbeOutcome {
	succeeded := statusCode == http.StatusOK
	if succeeded {
		detail = ""
	}
	return ProbeOutcome{
		Code:       code.Alpha2,
		Country:    code.Name,
		TargetURL:  targetURL,
		StatusCode: statusCode,
		Succeeded:  succeeded,
		Detail:     detail,
		DurationMS: float64(duration.Microseconds()) / 1000,
		Timestamp:  completedAt,
	}
}

// NewTransportFailure builds the outcome for a request that never got a response.
func NewTransportFailure(code CountryCode, targetURL string, err error, duration time.Duration, completedAt time.Time) ProbeOutcome {
	detail := "transport failure"
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return ProbeOutcome{
		Code:       code.Alpha2,
		Country:    code.Name,
		TargetURL:  targetURL,
		StatusCode: StatusTransportFailure,
		Succeeded:  false,
		Detail:     detail,
		DurationMS: float64(duration.Microseconds()) / 1000,
		Timestamp:  completedAt,
	}
}

// IsTransportFailure reports whether the outcome carries the sentinel status.
func (o ProbeOutcome) IsTransportFailure() bool {
	return o.StatusCode == StatusTransportFailure
}
