// Package config registers every setting mosaic understands and loads them through viper
// from defaults, the config file and MOSAIC_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const fileType = "toml"

// EnvKeyReplacer maps config keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// ErrUnknownKey is wrapped by every lookup of a key that is not registered.
var ErrUnknownKey = errors.New("unknown key")

// Setup loads the config file, if any, on top of the registered defaults.
// Values are not checked here so a broken file can still be repaired with config set.
func Setup() error {
	viper.SetConfigName(constant.Mosaic)
	viper.SetConfigType(fileType)
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Mosaic)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	if _, missing := err.(viper.ConfigFileNotFoundError); missing {
		return nil
	}
	return err
}

// File returns the path the config file is read from and written to.
func File() string {
	return filepath.Join(where.Config(), constant.Mosaic+"."+fileType)
}

// Keys returns every registered key sorted.
func Keys() []string {
	keys := lo.Keys(Default)
	sort.Strings(keys)
	return keys
}

// Lookup returns the field registered under name. For unknown names the error
// suggests the closest registered key.
func Lookup(name string) (Field, error) {
	if field, ok := Default[name]; ok {
		return field, nil
	}

	closest := lo.MinBy(Keys(), func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
	return Field{}, fmt.Errorf("%w %s, did you mean %s?", ErrUnknownKey, name, closest)
}

// Set parses words for the named key and stores the result in memory.
func Set(name string, words []string) (any, error) {
	field, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	value, err := field.Parse(words)
	if err != nil {
		return nil, err
	}

	viper.Set(name, value)
	return value, nil
}

// Reset restores the named keys, or every key when none is given, to their defaults in memory.
func Reset(names ...string) error {
	if len(names) == 0 {
		names = Keys()
	}

	for _, name := range names {
		field, err := Lookup(name)
		if err != nil {
			return err
		}
		viper.Set(name, field.Value)
	}
	return nil
}

// Save writes the in-memory settings to File, creating it when needed.
func Save() error {
	err := viper.WriteConfigAs(File())
	if err != nil {
		return fmt.Errorf("config: save %s: %w", File(), err)
	}
	return nil
}

// Validate checks every current value against its field.
func Validate() error {
	var errs []error
	for _, name := range Keys() {
		field := Default[name]
		if err := field.Check(viper.Get(name)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
