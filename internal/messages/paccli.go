package messages

// Pac CLI wrapper messages for construction and invocation failures.
const (
	// PacNotFoundFmt formats the construction-time failure when the pac
	// executable cannot be started at all.
	PacNotFoundFmt = "%s is not installed or not on PATH; install the Power Platform CLI first: %w"
	// PacProbeFailedFmt formats the construction-time failure when the pac
	// executable starts but does not answer the version probe.
	PacProbeFailedFmt = "%s did not answer the version probe (exit %d): %w"
	// PacStartFailedFmt formats unexpected process start failures.
	PacStartFailedFmt = "start %s: %w"
)
