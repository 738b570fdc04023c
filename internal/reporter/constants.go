package reporter

const (
	// Column headers of the summary table
	HeaderCode        = "Code"
	HeaderCountry     = "Country"
	HeaderStatus      = "Status"
	HeaderDescription = "Description"

	// Status markers
	SuccessMarker = "✅"
	FailureMarker = "❌"

	// DefaultPadding is the number of spaces between columns
	DefaultPadding = 2
	// DefaultMaxDescriptionWidth bounds the description column in display cells (0 for no limit)
	DefaultMaxDescriptionWidth = 80
)
