// Package log writes diagnostics to a daily file under the logs directory.
//
// Until Setup enables it from the logs.write setting, every call is discarded.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

var logger = discard

// Filename returns the name of the log file for day t.
func Filename(t time.Time) string {
	return fmt.Sprintf("%s-%s.log", constant.Mosaic, t.Format("2006-01-02"))
}

// Setup opens today's log file and applies the logs.* settings.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = discard
		return nil
	}

	path := filepath.Join(where.Logs(), Filename(time.Now()))
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("log: open %s: %w", path, err)
	}

	l := logrus.New()
	l.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = l
	return nil
}

// Enabled reports whether entries reach the log file.
func Enabled() bool {
	return logger != discard
}

// WithFields returns an entry carrying structured context such as a tile URL or an engine handle.
func WithFields(fields map[string]any) *logrus.Entry {
	return logger.WithFields(fields)
}

// Level-specific emitters, all routed through the active logger.

func Error(args ...any)                 { logger.Error(args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
func Warn(args ...any)                  { logger.Warn(args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Info(args ...any)                  { logger.Info(args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Debug(args ...any)                 { logger.Debug(args...) }
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
