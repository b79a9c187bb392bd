package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the pac CLI, settings, and authentication state"

	DoctorHeader = "Checking powerdesk health...\n"

	DoctorCheckNameTool     = "PacCLI"
	DoctorCheckNameSettings = "Settings"
	DoctorCheckNameAuth     = "Auth"

	DoctorToolOKFmt         = "pac CLI found: %s"
	DoctorToolMissingFmt    = "pac CLI unavailable: %v"
	DoctorToolRecommend     = "Install the Power Platform CLI and make sure 'pac' is on PATH, or set pac.executable in settings.toml."
	DoctorSettingsOKFmt     = "Settings loaded from %s"
	DoctorSettingsDefault   = "No settings file; built-in defaults are in effect"
	DoctorSettingsBadFmt    = "Settings file invalid: %v"
	DoctorSettingsRecommend = "Run 'ppd config init --force' to restore a valid settings file."
	DoctorAuthOKFmt         = "Signed in as %s"
	DoctorAuthMissing       = "No Power Platform identity"
	DoctorAuthRecommend     = "Run 'ppd auth' to authenticate."

	DoctorStatusOKLabel   = "[OK]  "
	DoctorStatusWarnLabel = "[WARN]"
	DoctorStatusFailLabel = "[FAIL]"
	DoctorRecommendFmt    = "       %s\n"
	DoctorAllClear        = "All checks passed.\n"
	DoctorProblemsFmt     = "%d check(s) reported problems.\n"
)
