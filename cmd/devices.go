package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/FluidXR/questdoctor/internal/adb"
)

var (
	devicesWait    bool
	devicesTimeout time.Duration
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices across the adb and fastboot channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		session := newSession()

		var (
			listings []adb.Listing
			err      error
		)
		if devicesWait {
			ctx := cmd.Context()
			if devicesTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, devicesTimeout)
				defer cancel()
			}
			listings, err = session.WaitForAny(ctx, cfg.PollInterval)
		} else {
			listings, err = session.ListDevices()
		}
		if err != nil {
			return fmt.Errorf("list devices: %w", err)
		}

		if len(listings) == 0 {
			fmt.Println("No devices connected.")
			return nil
		}
		for _, l := range listings {
			state := session.ResolveState(l.Serial)
			fmt.Printf("%-24s %-12s [%s]\n", l.Serial, state, l.Channel)
		}
		return nil
	},
}

func init() {
	devicesCmd.Flags().BoolVar(&devicesWait, "wait", false, "poll until at least one device appears")
	devicesCmd.Flags().DurationVar(&devicesTimeout, "timeout", 0, "give up waiting after this long (0 = forever)")
	rootCmd.AddCommand(devicesCmd)
}
