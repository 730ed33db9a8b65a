package resolver

import (
	"context"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/mosaic-cli/mosaic/where"
	"github.com/samber/mo"
)

type qualitiesData struct {
	Qualities map[string][]string `json:"qualities"`
}

// QualityCache remembers the quality lists of a resolver on disk. Resolution itself is never cached.
type QualityCache struct {
	stream.Resolver

	internal *gache.Cache[*qualitiesData]
	mu       sync.Mutex
}

// NewQualityCache wraps r. The whole cache expires lifetime after it was first written.
func NewQualityCache(r stream.Resolver, lifetime time.Duration) *QualityCache {
	return &QualityCache{
		Resolver: r,
		internal: gache.New[*qualitiesData](&gache.Options{
			Path:       where.Qualities(),
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Qualities returns the cached list for rawURL or asks the wrapped resolver.
func (c *QualityCache) Qualities(ctx context.Context, rawURL string) ([]string, error) {
	if cached, ok := c.get(rawURL).Get(); ok {
		return cached, nil
	}

	qualities, err := c.Resolver.Qualities(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if err := c.set(rawURL, qualities); err != nil {
		log.Warnf("resolver: caching qualities of %s: %v", rawURL, err)
	}
	return qualities, nil
}

func (c *QualityCache) get(rawURL string) mo.Option[[]string] {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[[]string]()
	}

	qualities, ok := data.Qualities[rawURL]
	if !ok || len(qualities) == 0 {
		return mo.None[[]string]()
	}
	return mo.Some(qualities)
}

func (c *QualityCache) set(rawURL string, qualities []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil {
		data = &qualitiesData{Qualities: make(map[string][]string)}
	}
	data.Qualities[rawURL] = qualities
	return c.internal.Set(data)
}
