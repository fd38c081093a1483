package messages

// Presentation shell messages.
const (
	ShellRequiresTerminal = "this prompt requires an interactive terminal"

	ShellTitle             = "PlanarAlly Server Installer"
	ShellInstallDirTitle   = "Install location:"
	ShellInstallDirHint    = "Python and PlanarAlly will be placed in this directory."
	ShellConfirmStartFmt   = "Install PlanarAlly into %s?"
	ShellAborted           = "Install aborted."
	ShellStepRunningFmt    = "%s (%d/%d)"
	ShellStepDoneFmt       = "✓ %s\n"
	ShellStepFailedFmt     = "✗ %s\n"
	ShellFinished          = "PlanarAlly was installed successfully."
	ShellFailedFmt         = "Install failed: %v\n"
	ShellCancelledFmt      = "Install cancelled: %v\n"
	ShellTimedOutFmt       = "Install failed, download timed out: %v\n"
	ShellPartialInstallFmt = "The install directory %s may contain a partial install; remove it or re-run the installer.\n"
	ShellQuitHint          = "ctrl+c to cancel after the current step"
	ShellCancelRequested   = "Cancelling after the current step..."
	ShellDownloadedFmt     = "  downloaded %s\n"
)
