package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "tile", "tiles"), ShouldEqual, "1 tile")
		So(Quantify(2, "tile", "tiles"), ShouldEqual, "2 tiles")
		So(Quantify(0, "tile", "tiles"), ShouldEqual, "0 tiles")
	})
}

func TestShorten(t *testing.T) {
	Convey("Shorten", t, func() {
		So(Shorten("https://example.com/live", 100), ShouldEqual, "https://example.com/live")
		So(Shorten("abcdefghij", 7), ShouldEqual, "abc…hij")
		So([]rune(Shorten("abcdefghij", 6)), ShouldHaveLength, 6)
		So(Shorten("abcdefghij", 3), ShouldEqual, "abc")
		So(Shorten("abc", 0), ShouldEqual, "abc")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 3), ShouldEqual, 3)
		So(Clamp(-1, 0, 3), ShouldEqual, 0)
		So(Clamp(2, 0, 3), ShouldEqual, 2)
	})
}
