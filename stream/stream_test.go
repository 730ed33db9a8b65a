package stream

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type pipeHandle struct{ io.Reader }

func (pipeHandle) Close() error { return nil }

type liveFile struct {
	*strings.Reader
}

func (liveFile) Close() error  { return nil }
func (liveFile) CanSeek() bool { return false }

func TestDescriptor(t *testing.T) {
	Convey("NewDescriptor", t, func() {
		Convey("Should trim input and keep an explicit quality", func() {
			d, err := NewDescriptor("  twitch.tv/esl_csgo ", " 480p30 ", "best")
			So(err, ShouldBeNil)
			So(d, ShouldResemble, Descriptor{URL: "twitch.tv/esl_csgo", Quality: "480p30"})
		})

		Convey("Should fall back to the default quality", func() {
			d, err := NewDescriptor("twitch.tv/a", "", "720p")
			So(err, ShouldBeNil)
			So(d.Quality, ShouldEqual, "720p")

			d, err = NewDescriptor("twitch.tv/a", "", "")
			So(err, ShouldBeNil)
			So(d.Quality, ShouldEqual, QualityBest)
		})

		Convey("Should reject malformed urls", func() {
			for _, url := range []string{"", "   ", "-vo=null", "a b", "a\nb"} {
				_, err := NewDescriptor(url, "best", "best")
				So(errors.Is(err, ErrInvalidDescriptor), ShouldBeTrue)
			}
		})

		Convey("Should reject a quality with spaces", func() {
			_, err := NewDescriptor("twitch.tv/a", "720p 60", "best")
			So(errors.Is(err, ErrInvalidDescriptor), ShouldBeTrue)
		})
	})
}

func TestResolutionError(t *testing.T) {
	Convey("Given a resolution error", t, func() {
		cause := errors.New("no playable streams")
		var err error = NewResolutionError("twitch.tv/a", "1080p", cause)

		Convey("It matches ErrResolution and unwraps to its cause", func() {
			So(errors.Is(err, ErrResolution), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "twitch.tv/a (1080p)")
		})

		Convey("It can be recovered with errors.As", func() {
			var re *ResolutionError
			So(errors.As(err, &re), ShouldBeTrue)
			So(re.Quality, ShouldEqual, "1080p")
		})
	})
}

func TestCanSeek(t *testing.T) {
	Convey("CanSeek", t, func() {
		Convey("A plain reader is not seekable", func() {
			So(CanSeek(pipeHandle{strings.NewReader("x")}), ShouldBeFalse)
		})

		Convey("A seeker is seekable", func() {
			f, err := os.CreateTemp(t.TempDir(), "seek")
			So(err, ShouldBeNil)
			defer f.Close()
			So(CanSeek(f), ShouldBeTrue)
		})

		Convey("A seeker that reports no capability is not seekable", func() {
			So(CanSeek(liveFile{strings.NewReader("x")}), ShouldBeFalse)
		})
	})
}
