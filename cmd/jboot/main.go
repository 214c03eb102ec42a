package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/obdevboot/jboot/hosterr"
)

// exitCode maps a hosterr.Code to the process exit status §6 promises:
// zero on success, a distinct nonzero value per error kind otherwise.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	switch hosterr.CodeOf(err) {
	case hosterr.Timeout:
		return 2
	case hosterr.BadParameter:
		return 3
	case hosterr.NoFreeResources:
		return 4
	case hosterr.NoDevice:
		return 5
	default:
		return 1
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "jboot",
		Short: "USB bootloader burner for AVR-class jboot targets",
		Long: `jboot drives the USB vendor-control-transfer firmware-update protocol:
it enumerates a matching device, erases/writes/dumps flash and NVRAM pages,
and optionally commits a new CRC-8 footer and resets the target.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(v)

			log := logrus.New()
			if cfg.Verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			return run(cmd.Context(), cfg, log)
		},
	}

	bindFlags(cmd.Flags(), v)
	return cmd
}

func main() {
	ctx := context.Background()
	cmd := newRootCommand()
	cmd.SetContext(ctx)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jboot:", err)
		os.Exit(exitCode(err))
	}
}
