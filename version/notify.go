package version

import (
	"context"
	"fmt"
	"time"

	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/mosaic-cli/mosaic/util"
	"github.com/spf13/viper"
)

const checkTimeout = 3 * time.Second

// Notify prints a notice if a newer release is out. Lookup failures are only logged.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()

	if err != nil {
		log.Warnf("version check: %v", err)
		return
	}

	if !Newer(latest) {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Success("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(ReleaseURL(latest)),
	)
}
