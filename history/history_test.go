package history

import (
	"testing"

	"github.com/mosaic-cli/mosaic/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestStore(t *testing.T) {
	Convey("Given a history file with duplicates", t, func() {
		store := New("/config/history.txt")
		So(filesystem.API().MkdirAll("/config", 0o755), ShouldBeNil)
		So(filesystem.API().WriteFile(store.Path, []byte("x\nx\ny\n"), 0o644), ShouldBeNil)

		Convey("Peeking reads it without truncating", func() {
			set, err := store.Peek()
			So(err, ShouldBeNil)
			So(set.Sorted(), ShouldResemble, []string{"x", "y"})

			data, err := filesystem.API().ReadFile(store.Path)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "x\nx\ny\n")
		})

		Convey("When loading it", func() {
			set, err := store.Load()
			So(err, ShouldBeNil)

			Convey("Then the set is deduplicated", func() {
				So(len(set), ShouldEqual, 2)
				So(set.Sorted(), ShouldResemble, []string{"x", "y"})
			})

			Convey("And the file is left empty", func() {
				data, err := filesystem.API().ReadFile(store.Path)
				So(err, ShouldBeNil)
				So(data, ShouldBeEmpty)
			})

			Convey("And a second load yields nothing", func() {
				again, err := store.Load()
				So(err, ShouldBeNil)
				So(again, ShouldBeEmpty)
			})
		})
	})

	Convey("Given no history file", t, func() {
		store := New("/nowhere/history.txt")

		Convey("Load returns an empty set without error", func() {
			set, err := store.Load()
			So(err, ShouldBeNil)
			So(set, ShouldBeEmpty)
		})

		Convey("Clear is a no-op", func() {
			So(store.Clear(), ShouldBeNil)
		})
	})

	Convey("Given an empty store", t, func() {
		store := New("/session/history.txt")
		So(filesystem.API().MkdirAll("/session", 0o755), ShouldBeNil)
		_ = filesystem.API().Remove(store.Path)

		Convey("Record appends one line per call", func() {
			So(store.Record("twitch.tv/a"), ShouldBeNil)
			So(store.Record("twitch.tv/b"), ShouldBeNil)

			data, err := filesystem.API().ReadFile(store.Path)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "twitch.tv/a\ntwitch.tv/b\n")
		})

		Convey("Record refuses blank and multi-line urls", func() {
			So(store.Record("  "), ShouldNotBeNil)
			So(store.Record("a\nb"), ShouldNotBeNil)
		})

		Convey("Clear truncates", func() {
			So(store.Record("twitch.tv/a"), ShouldBeNil)
			So(store.Clear(), ShouldBeNil)
			set, err := store.Load()
			So(err, ShouldBeNil)
			So(set, ShouldBeEmpty)
		})
	})
}

func TestSuggest(t *testing.T) {
	Convey("Given a history set", t, func() {
		set := Set{
			"twitch.tv/esl_csgo":    {},
			"twitch.tv/esl_dota2":   {},
			"youtube.com/@esl/live": {},
		}

		Convey("A prefix picks the shortest prefixed url", func() {
			So(Suggest(set, "twitch.tv/esl").MustGet(), ShouldEqual, "twitch.tv/esl_csgo")
		})

		Convey("A fuzzy fragment still matches", func() {
			So(Suggest(set, "dota").MustGet(), ShouldEqual, "twitch.tv/esl_dota2")
		})

		Convey("Nothing is suggested for empty or unmatched input", func() {
			So(Suggest(set, "").IsPresent(), ShouldBeFalse)
			So(Suggest(set, "kick.com").IsPresent(), ShouldBeFalse)
		})
	})
}
