// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Stream Selection - these keys control how a user-supplied URL becomes a stream descriptor.
const (
	StreamDefaultQuality = "stream.default_quality"
)

// Stream Resolution - these keys select and tune the backend that turns a URL into a byte stream.
const (
	ResolverBackend                = "resolver.backend"
	ResolverStreamlinkPath         = "resolver.streamlink_path"
	ResolverDirectExtensions       = "resolver.direct_extensions"
	ResolverQualitiesCacheLifetime = "resolver.qualities_cache_lifetime"
)

// Media Playback - these keys configure the external playback engine and the tile layout it renders.
const (
	PlayerPath         = "player.path"
	PlayerScreenWidth  = "player.screen_width"
	PlayerScreenHeight = "player.screen_height"
)

// History Tracking - these keys configure the session hand-off file.
const (
	HistorySaveOnExit   = "history.save_on_exit"
	HistoryKeepPrevious = "history.keep_previous"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
