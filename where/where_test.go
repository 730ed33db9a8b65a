package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mosaic-cli/mosaic/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestWhere(t *testing.T) {
	custom := filepath.Join(os.TempDir(), "mosaic-where-test")
	t.Setenv(EnvConfigPath, custom)

	Convey("Given a custom config path", t, func() {
		Convey("Config should honour the override", func() {
			So(Config(), ShouldEqual, custom)
		})

		Convey("The history file should live inside the config directory", func() {
			So(History(), ShouldEqual, filepath.Join(custom, "history.txt"))
		})

		Convey("The logs directory should be created", func() {
			exists, err := filesystem.API().DirExists(Logs())
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}

func TestTemp(t *testing.T) {
	Convey("Temp is a mosaic directory under the system temp dir", t, func() {
		So(Temp(), ShouldEqual, filepath.Join(os.TempDir(), "mosaic"))
		So(Qualities(), ShouldEndWith, "qualities.json")
	})
}
