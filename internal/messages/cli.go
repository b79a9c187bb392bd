package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "ppd"
	// RootShort is the short description for the root command.
	RootShort = "Power Platform desk"
	RootLong  = "Manage Power Platform environments and solutions through the pac CLI."

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	FlagConfig = "Path to the settings file (defaults to the user config directory)"

	// EnvUse is the environment command group name.
	EnvUse   = "env"
	EnvShort = "Inspect and select Power Platform environments"

	EnvListUse      = "list"
	EnvListShort    = "List environments known to the signed-in account"
	EnvRefreshUse   = "refresh"
	EnvRefreshShort = "Re-query pac and rebuild the environment catalog"
	EnvRefreshedFmt = "Refreshed %d environments\n"
	EnvRefreshFail  = "failed to refresh environments"

	EnvSelectUse            = "select [url]"
	EnvSelectShort          = "Select the environment to work against"
	EnvSelectPrompt         = "Select an environment"
	EnvSelectedFmt          = "Selected environment: %s\n"
	EnvSelectFailedFmt      = "failed to select environment %s"
	EnvSelectNoMatchFmt     = "no environment matches %q; run 'ppd env list' to see what is available"
	EnvSelectNeedsTerminal  = "environment selection without a URL requires an interactive terminal"
	EnvSelectCatalogEmpty   = "no environments available; authenticate with 'ppd auth' and try again"
	EnvSearchUse            = "search <query>"
	EnvSearchShort          = "Search environments by name or display name"
	EnvSearchNoneFmt        = "No environments match %q\n"
	EnvSummaryUse           = "summary"
	EnvSummaryShort         = "Show environment counts by type, region, and state"
	EnvSummaryTotalFmt      = "Total: %d\n"
	EnvSummaryByTypeHeader  = "By type:"
	EnvSummaryByRegionHdr   = "By region:"
	EnvSummaryByStateHeader = "By state:"

	// SolutionUse is the solution command group name.
	SolutionUse   = "solution"
	SolutionShort = "List, export, and import solutions"

	SolutionListUse     = "list"
	SolutionListShort   = "List solutions in the selected environment"
	SolutionLoadedFmt   = "Loaded %d solutions\n"
	SolutionExportUse   = "export"
	SolutionExportShort = "Export a solution from the selected environment"
	SolutionImportUse   = "import <path>"
	SolutionImportShort = "Import a solution into the selected environment"

	SolutionFlagName    = "Unique name of the solution to export"
	SolutionFlagPath    = "Directory the exported solution is written to"
	SolutionFlagManaged = "Export the solution as managed"
	SolutionFlagPublish = "Publish workflows after the import completes"

	SolutionExportPromptName = "Solution to export"
	SolutionExportPromptPath = "Export path"
	SolutionExportedFmt      = "Exported solution %s to %s\n"
	SolutionExportFailedFmt  = "failed to export solution %s"
	SolutionExportNeedsArgs  = "export requires --name and --path outside an interactive terminal"
	SolutionImportedFmt      = "Imported solution from %s\n"
	SolutionImportFailedFmt  = "failed to import solution from %s"

	// AuthUse is the auth command name.
	AuthUse        = "auth"
	AuthShort      = "Authenticate against Power Platform"
	AuthOK         = "Authentication succeeded"
	AuthFailed     = "authentication failed"
	WhoAmIUse      = "whoami"
	WhoAmIShort    = "Show the current Power Platform identity"
	WhoAmIFailed   = "not signed in; run 'ppd auth' to authenticate"
	WhoAmIFieldFmt = "%-14s %s\n"

	// DashUse is the dashboard command name.
	DashUse           = "dash"
	DashShort         = "Open the interactive environment dashboard"
	DashNeedsTerminal = "the dashboard requires an interactive terminal"

	// MCPUse is the MCP server command name.
	MCPUse   = "mcp"
	MCPShort = "Serve read-only environment tools over MCP stdio"

	// ConfigUse is the config command group name.
	ConfigUse         = "config"
	ConfigShort       = "Manage powerdesk settings"
	ConfigInitUse     = "init"
	ConfigInitShort   = "Write the default settings file"
	ConfigShowUse     = "show"
	ConfigShowShort   = "Print the active settings"
	ConfigFlagForce   = "Overwrite an existing settings file"
	ConfigFlagPreview = "Show a diff against the existing settings file instead of writing"
	ConfigInitExists  = "settings file already exists; re-run with --force to overwrite or --preview to compare"
	ConfigWrittenFmt  = "Wrote settings to %s\n"
	ConfigUpToDate    = "Settings file matches the default template."
	ConfigSourceFmt   = "# %s\n"
	ConfigDefaults    = "# built-in defaults (no settings file)\n"
)
