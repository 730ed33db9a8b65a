// Package where resolves the paths mosaic reads and writes. Directories are created on lookup.
package where

import (
	"os"
	"path/filepath"

	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the config directory.
const EnvConfigPath = "MOSAIC_CONFIG_PATH"

func mkdir(elem ...string) string {
	path := filepath.Join(elem...)
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the directory holding the config file, the history file and logs.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}
	return mkdir(lo.Must(os.UserConfigDir()), constant.Mosaic)
}

// Cache is the directory for data that can be thrown away at any time.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "cache"
	}
	return mkdir(base, constant.Mosaic)
}

// Logs is the directory log files are written to.
func Logs() string {
	return mkdir(Config(), "logs")
}

// History is the file listing the URLs of previous sessions.
func History() string {
	return filepath.Join(Config(), "history.txt")
}

// Qualities is the file caching the qualities offered per URL.
func Qualities() string {
	return filepath.Join(Cache(), "qualities.json")
}

// Temp is the directory for player IPC sockets.
func Temp() string {
	return mkdir(os.TempDir(), constant.Mosaic)
}
