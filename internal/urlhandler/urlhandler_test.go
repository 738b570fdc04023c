package urlhandler

import (
	"testing"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestValidateTargetURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "https domain", input: "https://www.example.com", wantErr: false},
		{name: "domain with path", input: "https://httpstat.us/200", wantErr: false},
		{name: "ftp scheme", input: "ftp://files.example.org/pub", wantErr: false},
		{name: "localhost with port", input: "http://localhost:8080/health", wantErr: false},
		{name: "ipv4 with port", input: "http://127.0.0.1:54321", wantErr: false},
		{name: "query string", input: "https://example.com?lang=en", wantErr: false},
		{name: "placeholder in path", input: "https://example.com/{code}/home", wantErr: false},
		{name: "placeholder in host", input: "https://{code}.example.com/", wantErr: false},
		{name: "upper case scheme", input: "HTTPS://EXAMPLE.COM", wantErr: false},
		{name: "empty", input: "   ", wantErr: true},
		{name: "missing scheme", input: "www.example.com", wantErr: true},
		{name: "unsupported scheme", input: "mailto://example.com", wantErr: true},
		{name: "space in path", input: "https://example.com/a b", wantErr: true},
		{name: "no host", input: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTargetURL(tt.input, DefaultPlaceholder)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, common.IsInputError(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Andorra", expected: "Andorra"},
		{input: "United Arab Emirates", expected: "United Arab Emirates"},
		{input: "Korea, Republic of", expected: "Korea, Republic of"},
		{input: "Côte d'Ivoire", expected: "Côte d'Ivoire"},
		{input: "Bolivia (Plurinational State of)", expected: "Bolivia (Plurinational State of)"},
		{input: "a/b\\c", expected: "a_b_c"},
		{input: "what?*<>", expected: "what_"},
		{input: "trailing dot.", expected: "trailing dot"},
		{input: "", expected: "sanitized_empty_input"},
		{input: "...", expected: "sanitized_empty_input"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}
