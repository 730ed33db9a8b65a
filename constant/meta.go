// Package constant holds identifiers and build metadata shared across mosaic.
package constant

import _ "embed"

const (
	Mosaic  = "mosaic"
	Version = "0.1.0"

	// UserAgent is sent when fetching direct streams over HTTP.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Set at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Values of runtime.GOOS that need platform specific handling.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)

//go:embed ascii.txt
var Banner string
