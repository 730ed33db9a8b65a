// Package main is the entry point for mosaic.
package main

import (
	"github.com/mosaic-cli/mosaic/cmd"
	"github.com/mosaic-cli/mosaic/config"
	"github.com/mosaic-cli/mosaic/internal/cache"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/where"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage(where.Temp(), cache.TTL)

	cmd.Execute()
}
