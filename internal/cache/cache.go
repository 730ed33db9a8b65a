// Package cache prunes files that crashed sessions leave behind, such as
// player IPC sockets whose mpv process never got to remove them.
package cache

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/log"
)

// TTL is how old a leftover has to be before it is removed.
const TTL = 24 * time.Hour

// CollectGarbage removes regular files and sockets directly under dir that were last
// modified before ttl ago. Live sessions touch nothing older, so it is safe to run
// while other instances are playing.
func CollectGarbage(dir string, ttl time.Duration) (removed int) {
	deadline := time.Now().Add(-ttl)
	fsys := filesystem.API()

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("cache: %v", err)
		}
		return 0
	}

	for _, entry := range entries {
		if !entry.Mode().IsRegular() && entry.Mode()&fs.ModeSocket == 0 {
			continue
		}
		if entry.ModTime().After(deadline) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := fsys.Remove(path); err != nil {
			log.Warnf("cache: remove %s: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Infof("cache: removed %d stale files from %s", removed, dir)
	}
	return removed
}
