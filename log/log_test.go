package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mosaic-cli/mosaic/filesystem"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	t.Setenv(where.EnvConfigPath, filepath.Join(os.TempDir(), "mosaic-log-test"))

	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup is a no-op and emissions are discarded", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
			So(func() { WithFields(map[string]any{"url": "x"}).Info("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "not-a-level")
		Reset(func() {
			viper.Set(key.LogsWrite, false)
			logger = discard
		})

		Convey("Setup creates today's log file", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)

			path := filepath.Join(where.Logs(), Filename(time.Now()))
			exists, err := filesystem.API().Exists(path)
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("Entries land in the file", func() {
			So(Setup(), ShouldBeNil)
			Warnf("tile %s ended", "https://example.com/a")

			data, err := filesystem.API().ReadFile(filepath.Join(where.Logs(), Filename(time.Now())))
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "tile https://example.com/a ended")
		})
	})
}
