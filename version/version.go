// Package version tracks the running release and checks for newer ones.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/network"
	"github.com/mosaic-cli/mosaic/util"
	"github.com/mosaic-cli/mosaic/where"
)

// Repository is the GitHub slug releases are published under.
const Repository = "mosaic-cli/mosaic"

var latestCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest published release, cached for two days.
func Latest(ctx context.Context) (string, error) {
	cached, expired, err := latestCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", Repository)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	_ = latestCacher.Set(latest)
	return latest, nil
}

// ReleaseURL points at the release page of v.
func ReleaseURL(v string) string {
	return fmt.Sprintf("https://github.com/%s/releases/tag/v%s", Repository, v)
}

// Newer reports whether latest is a newer release than the running one.
func Newer(latest string) bool {
	comp, err := Compare(latest, constant.Version)
	return err == nil && comp > 0
}
