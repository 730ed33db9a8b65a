package cmd

import (
	"github.com/mosaic-cli/mosaic/history"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/player"
	"github.com/mosaic-cli/mosaic/registry"
	"github.com/mosaic-cli/mosaic/resolver"
	"github.com/mosaic-cli/mosaic/stream"
	"github.com/mosaic-cli/mosaic/where"
	"github.com/spf13/viper"
)

// session bundles what every viewing command needs.
type session struct {
	resolver *resolver.Mux
	engine   *player.MPV
	registry *registry.Registry
}

func newSession() (*session, error) {
	mux, err := resolver.FromConfig()
	if err != nil {
		return nil, err
	}

	engine := player.NewMPV()
	reg := registry.New(mux, engine, history.New(where.History()), registry.Options{
		KeepPrevious: viper.GetBool(key.HistoryKeepPrevious),
		SaveOnExit:   viper.GetBool(key.HistorySaveOnExit),
	})

	return &session{resolver: mux, engine: engine, registry: reg}, nil
}

// descriptors turns command line arguments into stream descriptors at the default quality.
func descriptors(args []string) ([]stream.Descriptor, error) {
	quality := viper.GetString(key.StreamDefaultQuality)

	descs := make([]stream.Descriptor, 0, len(args))
	for _, arg := range args {
		desc, err := stream.NewDescriptor(arg, "", quality)
		if err != nil {
			return nil, err
		}
		descs = append(descs, desc)
	}
	return descs, nil
}
