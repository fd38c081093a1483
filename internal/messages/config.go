package messages

// Settings store messages.
const (
	// ConfigResolveDirFmt formats failures resolving the per-user config directory.
	ConfigResolveDirFmt             = "resolve user config dir: %w"
	ConfigCreateDirFmt              = "create settings directory %s: %w"
	ConfigReadFmt                   = "read settings %s: %w"
	ConfigInvalidFmt                = "invalid settings %s: %w"
	ConfigEncodeFmt                 = "encode settings: %w"
	ConfigWriteFmt                  = "write settings %s: %w"
	ConfigInvalidTimeoutFmt         = "%s: download.timeout %q is not a valid duration: %w"
	ConfigMaxBytesInvalidFmt        = "%s: download.max_bytes must be positive"
	ConfigRuntimeVersionRequiredFmt = "%s: runtime.version is required"
	ConfigArchiveURLRequiredFmt     = "%s: archive.url is required"
	ConfigArchiveEntriesRequiredFmt = "%s: archive.entries must list at least one entry"
	ConfigManifestRequiredFmt       = "%s: archive.manifest is required"

	LoggingInvalidLevelFmt = "invalid log level %q: %w"
	LoggingPanic           = "UNCAUGHT PANIC"
	LoggingPanicErrFmt     = "installer panicked: %v"
)
