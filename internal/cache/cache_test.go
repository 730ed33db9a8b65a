package cache

import (
	"testing"
	"time"

	"github.com/mosaic-cli/mosaic/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCollectGarbage(t *testing.T) {
	Convey("Given a temp directory with old and fresh files", t, func() {
		fsys := filesystem.API()
		dir := "/tmp/mosaic"
		So(fsys.MkdirAll(dir+"/nested", 0o755), ShouldBeNil)

		So(fsys.WriteFile(dir+"/old.sock", nil, 0o600), ShouldBeNil)
		So(fsys.WriteFile(dir+"/fresh.sock", nil, 0o600), ShouldBeNil)
		old := time.Now().Add(-48 * time.Hour)
		So(fsys.Chtimes(dir+"/old.sock", old, old), ShouldBeNil)
		So(fsys.Chtimes(dir+"/nested", old, old), ShouldBeNil)

		Convey("Only the old file is removed", func() {
			So(CollectGarbage(dir, TTL), ShouldEqual, 1)

			exists, _ := fsys.Exists(dir + "/old.sock")
			So(exists, ShouldBeFalse)
			exists, _ = fsys.Exists(dir + "/fresh.sock")
			So(exists, ShouldBeTrue)
			exists, _ = fsys.DirExists(dir + "/nested")
			So(exists, ShouldBeTrue)
		})

		Convey("A missing directory is not an error", func() {
			So(CollectGarbage("/does/not/exist", TTL), ShouldEqual, 0)
		})
	})
}
