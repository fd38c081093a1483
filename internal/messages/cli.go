package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse   = "pa-install"
	RootShort = "Install a PlanarAlly server"
	RootLong  = "Downloads Python, installs it into the chosen directory, fetches PlanarAlly and installs its dependencies."

	RootFlagDir            = "Install directory (prompted when omitted in an interactive terminal)"
	RootFlagYes            = "Do not prompt; install into --dir or the saved default directory"
	RootFlagConfig         = "Path to the installer settings file"
	RootFlagRuntimeVersion = "Python version to download and install"
	RootFlagLogLevel       = "Log level (debug, info, warn, error)"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	PlanUse   = "plan"
	PlanShort = "Print the install steps and commands without running them"

	PlanHeaderFmt        = "Install plan for %s (%s, %s-bit)\n"
	PlanStepFmt          = "  %d. %s\n"
	PlanRuntimeURLFmt    = "Runtime URL:       %s\n"
	PlanRuntimeFileFmt   = "Runtime installer: %s\n"
	PlanInterpreterFmt   = "Interpreter:       %s\n"
	PlanArchiveURLFmt    = "Archive URL:       %s\n"
	PlanArchiveFilterFmt = "Archive entries:   %s\n"
	PlanCommandsHeader   = "Commands:"
	PlanCommandFmt       = "  $ %s\n"
	// PlanArchivePrefix stands in for the archive's top-level directory, known only after download.
	PlanArchivePrefix = "<archive-root>"

	CLIPanicFmt              = "installer crashed: %v\n"
	CLISaveDefaultDirWarnFmt = "Warning: failed to remember install directory: %v\n"
	CLINoDirNonInteractive   = "no install directory given; pass --dir or run in an interactive terminal"
)
