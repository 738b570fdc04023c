package datastore

// ParquetOutcome defines the schema for storing probe outcomes in Parquet format.
// Timestamps are stored as UnixMilli.
type ParquetOutcome struct {
	SessionID   string  `parquet:"session_id"`
	Code        string  `parquet:"code"`
	Country     string  `parquet:"country"`
	TargetURL   string  `parquet:"target_url"`
	StatusCode  int32   `parquet:"status_code"`
	Succeeded   bool    `parquet:"succeeded"`
	Detail      *string `parquet:"detail,optional"`
	DurationMS  float64 `parquet:"duration_ms"`
	CompletedAt int64   `parquet:"completed_at"`
}

// StringPtrOrNil converts string to pointer, or nil if string is empty
func StringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringOrEmpty dereferences p, returning "" for nil
func StringOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
