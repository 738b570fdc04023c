package urlhandler

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/aleister1102/geoprobe/internal/common"
)

// DefaultPlaceholder is the token replaced by the lowercase country code in a URL template.
const DefaultPlaceholder = "{code}"

// placeholderProbe stands in for the country code while a template is validated.
const placeholderProbe = "xx"

var (
	// targetURLRegex accepts http/https/ftp/ftps URLs whose host is a domain,
	// localhost or an IPv4 address, with an optional port and path or query.
	targetURLRegex = regexp.MustCompile(`(?i)^(?:http|ftp)s?://` +
		`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?)|` +
		`localhost|` +
		`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`)

	// Characters rejected in filenames by at least one common filesystem.
	unsafeFilenameCharsRegex = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]+`)
	multipleUnderscoresRegex = regexp.MustCompile(`_+`)
)

// ValidateTargetURL checks that rawURL is a well-formed probe target. Any
// placeholder token is swapped for a dummy code before the shape check.
func ValidateTargetURL(rawURL, placeholder string) error {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return common.NewInputError("url", "", "URL is empty or only whitespace")
	}

	candidate := trimmedURL
	if placeholder != "" {
		candidate = strings.ReplaceAll(candidate, placeholder, placeholderProbe)
	}

	if !targetURLRegex.MatchString(candidate) {
		return common.NewInputError("url", trimmedURL, "invalid URL format -> expected https://www.example.com")
	}

	parsedURL, err := url.Parse(candidate)
	if err != nil {
		return common.NewInputError("url", trimmedURL, "could not parse URL: "+err.Error())
	}
	if parsedURL.Hostname() == "" {
		return common.NewInputError("url", trimmedURL, "URL lacks a valid hostname")
	}

	return nil
}

// SanitizeFilename turns a display name into a safe filename while keeping it
// readable: only path separators and characters that filesystems reject are
// replaced. "Korea, Republic of" stays as is.
func SanitizeFilename(input string) string {
	name := unsafeFilenameCharsRegex.ReplaceAllString(input, "_")
	name = multipleUnderscoresRegex.ReplaceAllString(name, "_")

	// Trailing dots and spaces are stripped by Windows and confuse shells.
	name = strings.Trim(name, " .")

	if name == "" {
		return "sanitized_empty_input"
	}

	return name
}
