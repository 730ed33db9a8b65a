package stream

import (
	"fmt"
	"strings"
)

// Descriptor identifies one stream the user asked to watch.
type Descriptor struct {
	URL     string `json:"url" jsonschema:"description=Stream URL as entered by the user."`
	Quality string `json:"quality" jsonschema:"description=Quality label passed to the resolver."`
}

// NewDescriptor validates and normalizes a URL and quality pair.
// An empty quality falls back to defaultQuality.
func NewDescriptor(url, quality, defaultQuality string) (Descriptor, error) {
	url = strings.TrimSpace(url)
	quality = strings.TrimSpace(quality)

	switch {
	case url == "":
		return Descriptor{}, fmt.Errorf("%w: empty url", ErrInvalidDescriptor)
	case strings.ContainsAny(url, "\x00\n\r\t "):
		return Descriptor{}, fmt.Errorf("%w: url %q contains whitespace or control characters", ErrInvalidDescriptor, url)
	case strings.HasPrefix(url, "-"):
		return Descriptor{}, fmt.Errorf("%w: url %q looks like a flag", ErrInvalidDescriptor, url)
	}

	if quality == "" {
		quality = strings.TrimSpace(defaultQuality)
	}
	if quality == "" {
		quality = QualityBest
	}
	if strings.ContainsAny(quality, "\x00\n\r\t ") {
		return Descriptor{}, fmt.Errorf("%w: quality %q contains whitespace or control characters", ErrInvalidDescriptor, quality)
	}

	return Descriptor{URL: url, Quality: quality}, nil
}

// String returns the URL followed by the quality label.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.URL, d.Quality)
}
