package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is one registered setting.
type Field struct {
	Key         string
	Value       any
	Description string
	// Options, when set, lists every accepted value.
	Options []string
	// Duration marks string settings holding a time.Duration such as "10m".
	Duration bool
	// Positive marks int settings that must be above zero.
	Positive bool
}

// Pretty renders the field for config info.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Mosaic + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Check reports whether v is acceptable for the field.
func (f *Field) Check(v any) error {
	switch value := v.(type) {
	case string:
		if len(f.Options) > 0 && !lo.Contains(f.Options, value) {
			return fmt.Errorf("%s: %q is not one of %s", f.Key, value, strings.Join(f.Options, ", "))
		}
		if f.Duration {
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("%s: %w", f.Key, err)
			}
		}
	case int:
		if f.Positive && value <= 0 {
			return fmt.Errorf("%s: %d is not positive", f.Key, value)
		}
	}
	return nil
}

// Parse converts command line words into a value of the field's type.
func (f *Field) Parse(words []string) (any, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: missing value", f.Key)
	}

	var (
		v   any
		err error
	)

	switch f.Value.(type) {
	case string:
		v = words[0]
	case int:
		v, err = strconv.Atoi(words[0])
	case bool:
		v, err = strconv.ParseBool(words[0])
	case []string:
		v = lo.FlatMap(words, func(w string, _ int) []string {
			return lo.Compact(lo.Map(strings.Split(w, ","), func(s string, _ int) string {
				return strings.TrimSpace(s)
			}))
		})
	default:
		err = fmt.Errorf("unsupported type %T", f.Value)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Key, err)
	}
	return v, f.Check(v)
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Options     []string `json:"options,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
		Options:     f.Options,
	})
}

// TypeName names the value type shown to users.
func (f *Field) TypeName() string {
	if f.Duration {
		return "duration"
	}
	return reflect.TypeOf(f.Value).String()
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func register(f Field) {
	if _, exists := Default[f.Key]; exists {
		panic("duplicate config key: " + f.Key)
	}
	Default[f.Key] = f
	EnvExposed = append(EnvExposed, f.Key)
}

func init() {
	register(Field{
		Key:         key.StreamDefaultQuality,
		Value:       "best",
		Description: "Quality used when a stream is added without choosing one.\nAny label the resolver reports, e.g. \"720p60\", \"best\" or \"worst\"",
	})
	register(Field{
		Key:         key.ResolverBackend,
		Value:       "auto",
		Description: "Stream resolution backend",
		Options:     []string{"auto", "streamlink", "http", "file"},
	})
	register(Field{
		Key:         key.ResolverStreamlinkPath,
		Value:       "streamlink",
		Description: "Path to the streamlink executable",
	})
	register(Field{
		Key:         key.ResolverDirectExtensions,
		Value:       []string{"ts", "mp4", "mkv", "flv", "webm"},
		Description: "URL path extensions that the auto backend fetches directly over HTTP instead of through streamlink",
	})
	register(Field{
		Key:         key.ResolverQualitiesCacheLifetime,
		Value:       "10m",
		Description: "How long the list of qualities offered for a URL is cached",
		Duration:    true,
	})
	register(Field{
		Key:         key.PlayerPath,
		Value:       "mpv",
		Description: "Path to the mpv executable used to render tiles",
	})
	register(Field{
		Key:         key.PlayerScreenWidth,
		Value:       1920,
		Description: "Width in pixels of the area the tile grid is laid out on",
		Positive:    true,
	})
	register(Field{
		Key:         key.PlayerScreenHeight,
		Value:       1080,
		Description: "Height in pixels of the area the tile grid is laid out on",
		Positive:    true,
	})
	register(Field{
		Key:         key.HistorySaveOnExit,
		Value:       true,
		Description: "Write the URLs of open tiles to the history file on exit",
	})
	register(Field{
		Key:         key.HistoryKeepPrevious,
		Value:       true,
		Description: "Also carry the history loaded at startup over to the next session",
	})
	register(Field{
		Key:         key.IconsVariant,
		Value:       "plain",
		Description: "Icons variant. nerd needs a nerd font",
		Options:     icon.AvailableVariants(),
	})
	register(Field{
		Key:         key.LogsWrite,
		Value:       false,
		Description: "Write logs",
	})
	register(Field{
		Key:         key.LogsLevel,
		Value:       "info",
		Description: "Log verbosity, from least to most verbose",
		Options:     []string{"panic", "fatal", "error", "warn", "info", "debug", "trace"},
	})
	register(Field{
		Key:         key.LogsJson,
		Value:       false,
		Description: "Use json format for logs",
	})
	register(Field{
		Key:         key.CliColored,
		Value:       true,
		Description: "Enable colored CLI output",
	})
	register(Field{
		Key:         key.CliVersionCheck,
		Value:       true,
		Description: "Enable automatic version check",
	})
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint": style.Faint,
	"key":   style.Key,
	"label": style.Fg(style.Blue),
	"join":  strings.Join,
	"value": func(k string) any { return viper.Get(k) },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Success(b)
			}
			return style.Failure(b)
		case string:
			return style.Value(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ label "Key:" }}     {{ key .Key }}
{{ label "Env:" }}     {{ .Env }}
{{ label "Value:" }}   {{ hl (value .Key) }}
{{ label "Default:" }} {{ hl .Value }}
{{ label "Type:" }}    {{ .TypeName }}{{ if .Options }}
{{ label "Options:" }} {{ join .Options ", " }}{{ end }}`))
