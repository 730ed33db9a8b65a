// Package filesystem routes every file access mosaic makes through a swappable afero backend.
// Tests switch it to memory with SetMemMapFs.
package filesystem

import "github.com/spf13/afero"

var backend = wrap(afero.NewOsFs())

func wrap(fs afero.Fs) afero.Afero {
	return afero.Afero{Fs: fs}
}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// Use replaces the active backend with fs.
func Use(fs afero.Fs) {
	backend = wrap(fs)
}

// SetOsFs switches back to the real filesystem.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs switches to an empty in-memory filesystem.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}
