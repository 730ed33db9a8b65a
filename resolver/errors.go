package resolver

import "errors"

var (
	errIsDirectory   = errors.New("is a directory")
	errNoStreams     = errors.New("no playable streams found")
	errEmptyResponse = errors.New("stream ended before any data arrived")
)
