// Package auth keeps per-host bearer tokens for protected stream servers in the system keyring.
package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mosaic-cli/mosaic/constant"
	"github.com/samber/mo"
	"github.com/zalando/go-keyring"
)

const service = constant.Mosaic + "-cli"

// Host normalizes a host name or a full URL to the key tokens are stored under.
func Host(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("auth: empty host")
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("auth: %w", err)
		}
		raw = u.Host
	}

	return strings.ToLower(raw), nil
}

// SetToken stores the bearer token for host.
func SetToken(host, token string) error {
	key, err := Host(host)
	if err != nil {
		return err
	}
	return keyring.Set(service, key, token)
}

// Token returns the bearer token for host, if one is stored.
func Token(host string) mo.Option[string] {
	key, err := Host(host)
	if err != nil {
		return mo.None[string]()
	}

	token, err := keyring.Get(service, key)
	if err != nil || token == "" {
		return mo.None[string]()
	}
	return mo.Some(token)
}

// DeleteToken removes the token for host. Deleting a missing token is not an error.
func DeleteToken(host string) error {
	key, err := Host(host)
	if err != nil {
		return err
	}

	if err := keyring.Delete(service, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
