package messages

// Installer orchestration messages.
const (
	// InstallRunInProgress indicates a second run was requested while one is active.
	InstallRunInProgress      = "an install is already running"
	InstallDirRequired        = "install directory is required"
	InstallDirNotAbsoluteFmt  = "install directory %s must be an absolute path"
	InstallDirMissingFmt      = "install directory %s does not exist"
	InstallDirNotDirFmt       = "install directory %s is not a directory"
	InstallDirStatFmt         = "failed to stat install directory %s: %w"
	InstallDirNotWritableFmt  = "install directory %s is not writable: %w"
	InstallUnsupportedArchFmt = "unsupported architecture %q (expected 32 or 64)"
	InstallLockFmt            = "install directory %s is in use by another installer: %w"
	InstallCancelledBeforeFmt = "install cancelled before %s: %w"
	InstallStepFailedFmt      = "%s: %w"

	// Error type renderings.
	InstallPathErrorFmt           = "invalid install path %s: %v"
	InstallDownloadErrorFmt       = "could not download from url: %s: %v"
	InstallDownloadStatusErrorFmt = "could not download from url: %s (status %d)"
	InstallFilesystemErrorFmt     = "failed to write %s: %v"
	InstallProcessErrorFmt        = "command %q exited with code %d"
	InstallProcessSpawnErrorFmt   = "command %q could not be started: %v"
	InstallProcessTerminatedFmt   = "command %q terminated: %s"
	InstallExtractionErrorFmt     = "failed to extract %s: %v"
	InstallExtractionArchiveFmt   = "failed to read archive: %v"

	// Step descriptions.
	StepChdir              = "Enter install directory"
	StepDownloadRuntimeFmt = "Download Python %s"
	StepPersistRuntimeFmt  = "Save %s"
	StepInstallRuntimeFmt  = "Install Python %s"
	StepUpgradePip         = "Upgrade pip"
	StepFetchArchive       = "Download and extract PlanarAlly"
	StepInstallDeps        = "Install PlanarAlly dependencies"

	// Log lines.
	InstallLogRunStarted    = "install run started"
	InstallLogRunFinished   = "install run finished"
	InstallLogRunFailed     = "install run failed"
	InstallLogStepStarted   = "step started"
	InstallLogStepFinished  = "step finished"
	InstallLogDownloaded    = "downloaded"
	InstallLogCommand       = "running command"
	InstallLogArchivePrefix = "resolved archive prefix"
)

// Archive messages.
const (
	ArchiveOpenFmt          = "open archive: %w"
	ArchiveEmpty            = "archive is empty"
	ArchiveNoCommonPrefix   = "archive members do not share a single top-level directory"
	ArchiveEntryMissing     = "entry not found in archive"
	ArchiveUnsafeMemberFmt  = "member %q escapes the destination directory"
	ArchiveOpenMemberFmt    = "open member %s: %w"
	ArchiveCreateDirFmt     = "create directory %s: %w"
	ArchiveWriteMemberFmt   = "write %s: %w"
	ArchiveEmptyFilterEntry = "archive filter entry must not be empty"
)

// Fetch messages.
const (
	FetchCreateRequestFmt = "create request: %w"
	FetchTooLargeFmt      = "response exceeds %s limit"
	FetchReadBodyFmt      = "read response body: %w"
	FetchUserAgent        = "planarally-installer"
)
