package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	Convey("Renderers keep the text", t, func() {
		So(Success("done"), ShouldContainSubstring, "done")
		So(Key("player.path"), ShouldContainSubstring, "player.path")
		So(Title("Tiles"), ShouldContainSubstring, "Tiles")
	})

	Convey("Mute labels tell an own choice from mute all", t, func() {
		So(Muted(true), ShouldContainSubstring, "muted")
		So(Muted(true), ShouldNotContainSubstring, "mute all")
		So(Muted(false), ShouldContainSubstring, "muted by mute all")
	})

	Convey("Truncate pads to the width", t, func() {
		So(len(Truncate(10)("abc")), ShouldBeGreaterThanOrEqualTo, 10)
	})
}
