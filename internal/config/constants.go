package config

const (
	// Mode values
	ModeOnetime     = "onetime"
	ModeInteractive = "interactive"

	// Probe defaults
	DefaultProbeConcurrency     = 8
	DefaultProbeTimeoutSecs     = 10
	DefaultProbeMethod          = "GET"
	DefaultProbeUserAgent       = "geoprobe/1.0"
	DefaultProbeMaxDetailBytes  = 1024
	DefaultProbeMaxBodyBytes    = 1 << 20
	DefaultProbeFollowRedirects = true
	DefaultProbeMaxRedirects    = 10

	// Session defaults
	DefaultSessionBaseDir = "responses"

	// Storage defaults
	DefaultStorageCompressionCodec = "zstd"

	// History defaults
	DefaultHistoryDBPath = "responses/history.db"

	// Reporter defaults
	DefaultReporterMaxDescriptionWidth = 80

	// Notification defaults
	DefaultNotificationUsername = "geoprobe"

	// Progress defaults
	DefaultProgressDisplayIntervalSecs = 3

	// Config file discovery
	ConfigPathEnvVar  = "GEOPROBE_CONFIG_PATH"
	maxConfigFileSize = 10 * 1024 * 1024
)
