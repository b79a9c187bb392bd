package messages

// Config messages for settings loading and validation.
const (
	// ConfigMissingFileFmt formats missing settings file errors.
	ConfigMissingFileFmt  = "missing settings file %s: %w"
	ConfigInvalidFileFmt  = "invalid settings %s: %w"
	ConfigUnknownKeysFmt  = "settings %s contain unrecognized keys: %v"
	ConfigWriteFailedFmt  = "write settings %s: %w"
	ConfigResolveHomeFmt  = "resolve home directory: %w"
	ConfigTimeoutPositive = "pac.timeout_seconds must be positive"
	ConfigRetryNegative   = "pac.retry_attempts must not be negative"
	ConfigBadLevelFmt     = "logging.level %q is not one of debug, info, warn, error"
	ConfigBadGeometry     = "ui.width and ui.height must be positive"
)
