package resolver

import (
	"context"
	"strings"

	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/spf13/afero"
)

const fileScheme = "file://"

// File serves local recordings. Its handles can seek.
type File struct{}

type fileHandle struct {
	afero.File
}

func (fileHandle) CanSeek() bool {
	return true
}

// Resolve opens the file at rawURL, which may carry a file:// prefix. The quality is ignored.
func (File) Resolve(_ context.Context, rawURL, quality string) (stream.Handle, error) {
	name := strings.TrimPrefix(rawURL, fileScheme)

	f, err := filesystem.API().Open(name)
	if err != nil {
		return nil, stream.NewResolutionError(rawURL, quality, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, stream.NewResolutionError(rawURL, quality, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, stream.NewResolutionError(rawURL, quality, errIsDirectory)
	}

	return fileHandle{File: f}, nil
}

// Qualities implements stream.Resolver.
func (File) Qualities(context.Context, string) ([]string, error) {
	return single(), nil
}
