package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestHost(t *testing.T) {
	Convey("Host normalizes hosts and URLs", t, func() {
		host, err := Host("https://Cdn.Example.com:8443/live/index.m3u8")
		So(err, ShouldBeNil)
		So(host, ShouldEqual, "cdn.example.com:8443")

		host, err = Host("  example.com ")
		So(err, ShouldBeNil)
		So(host, ShouldEqual, "example.com")

		_, err = Host(" ")
		So(err, ShouldNotBeNil)
	})
}

func TestTokens(t *testing.T) {
	Convey("Given a token stored for a host", t, func() {
		So(SetToken("example.com", "secret"), ShouldBeNil)

		Convey("Then it is found by URL", func() {
			So(Token("http://EXAMPLE.com/stream").OrEmpty(), ShouldEqual, "secret")
		})

		Convey("Then other hosts have none", func() {
			So(Token("other.com").IsAbsent(), ShouldBeTrue)
		})

		Convey("When it is deleted twice", func() {
			So(DeleteToken("example.com"), ShouldBeNil)
			So(DeleteToken("example.com"), ShouldBeNil)

			Convey("Then it is gone", func() {
				So(Token("example.com").IsAbsent(), ShouldBeTrue)
			})
		})
	})
}
