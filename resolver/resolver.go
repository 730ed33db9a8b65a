// Package resolver turns user-supplied URLs into blocking byte streams.
package resolver

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/network"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Backend names accepted by the resolver.backend setting.
const (
	BackendAuto       = "auto"
	BackendStreamlink = "streamlink"
	BackendHTTP       = "http"
	BackendFile       = "file"
)

// Backends lists every valid backend name.
var Backends = []string{BackendAuto, BackendStreamlink, BackendHTTP, BackendFile}

// Mux dispatches each URL to one of its resolvers.
type Mux struct {
	// Backend forces one resolver unless it is BackendAuto.
	Backend string

	Streamlink stream.Resolver
	HTTP       stream.Resolver
	File       stream.Resolver

	// Direct lists path extensions that BackendAuto fetches over plain HTTP.
	Direct []string
}

// FromConfig builds a Mux from the current settings.
func FromConfig() (*Mux, error) {
	backend := viper.GetString(key.ResolverBackend)
	if !lo.Contains(Backends, backend) {
		return nil, fmt.Errorf("resolver: unknown backend %q, expected one of %s", backend, strings.Join(Backends, ", "))
	}

	return &Mux{
		Backend: backend,
		Streamlink: NewQualityCache(
			&Streamlink{Path: viper.GetString(key.ResolverStreamlinkPath)},
			viper.GetDuration(key.ResolverQualitiesCacheLifetime),
		),
		HTTP:   &HTTP{Client: network.Streaming},
		File:   &File{},
		Direct: viper.GetStringSlice(key.ResolverDirectExtensions),
	}, nil
}

// Resolve implements stream.Resolver.
func (m *Mux) Resolve(ctx context.Context, rawURL, quality string) (stream.Handle, error) {
	r, name := m.pick(rawURL)
	log.Debugf("resolver: %s via %s", rawURL, name)
	return r.Resolve(ctx, rawURL, quality)
}

// Qualities implements stream.Resolver.
func (m *Mux) Qualities(ctx context.Context, rawURL string) ([]string, error) {
	r, _ := m.pick(rawURL)
	return r.Qualities(ctx, rawURL)
}

// Pick returns the name of the backend rawURL is dispatched to.
func (m *Mux) Pick(rawURL string) string {
	_, name := m.pick(rawURL)
	return name
}

func (m *Mux) pick(rawURL string) (stream.Resolver, string) {
	switch m.Backend {
	case BackendStreamlink:
		return m.Streamlink, BackendStreamlink
	case BackendHTTP:
		return m.HTTP, BackendHTTP
	case BackendFile:
		return m.File, BackendFile
	}

	if strings.HasPrefix(rawURL, fileScheme) {
		return m.File, BackendFile
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		if exists, _ := filesystem.API().Exists(rawURL); exists {
			return m.File, BackendFile
		}
		return m.Streamlink, BackendStreamlink
	}

	if u.Scheme == "http" || u.Scheme == "https" {
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), ".")
		if ext != "" && lo.Contains(m.Direct, ext) {
			return m.HTTP, BackendHTTP
		}
	}

	return m.Streamlink, BackendStreamlink
}

// single is the quality list of backends that serve exactly one rendition.
func single() []string {
	return []string{stream.QualityBest}
}
