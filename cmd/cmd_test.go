package cmd

import (
	"errors"
	"testing"

	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/resolver"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestDescriptors(t *testing.T) {
	Convey("Given a default quality", t, func() {
		viper.Set(key.StreamDefaultQuality, "720p")
		defer viper.Set(key.StreamDefaultQuality, nil)

		Convey("Every argument takes it", func() {
			descs, err := descriptors([]string{"https://a", " https://b "})
			So(err, ShouldBeNil)
			So(descs, ShouldResemble, []stream.Descriptor{
				{URL: "https://a", Quality: "720p"},
				{URL: "https://b", Quality: "720p"},
			})
		})

		Convey("An argument that looks like a flag is refused", func() {
			_, err := descriptors([]string{"https://a", "--oops"})
			So(errors.Is(err, stream.ErrInvalidDescriptor), ShouldBeTrue)
		})
	})
}

func TestDependencies(t *testing.T) {
	names := func() []string {
		return lo.Map(dependencies(), func(d dependency, _ int) string { return d.name })
	}

	Convey("Given each resolver backend", t, func() {
		defer viper.Set(key.ResolverBackend, nil)

		Convey("auto wants streamlink but can live without it", func() {
			viper.Set(key.ResolverBackend, resolver.BackendAuto)
			So(names(), ShouldResemble, []string{"mpv", "streamlink"})
			So(dependencies()[1].required, ShouldBeFalse)
		})

		Convey("streamlink requires it", func() {
			viper.Set(key.ResolverBackend, resolver.BackendStreamlink)
			So(dependencies()[1].required, ShouldBeTrue)
		})

		Convey("http only needs mpv", func() {
			viper.Set(key.ResolverBackend, resolver.BackendHTTP)
			So(names(), ShouldResemble, []string{"mpv"})
		})
	})
}
