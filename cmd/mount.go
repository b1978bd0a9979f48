package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FluidXR/questdoctor/internal/device"
)

var remountMode string

var mountCmd = &cobra.Command{
	Use:   "mount <serial>",
	Short: "Show the system mount entry, optionally remounting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := device.New(newSession(), args[0], log)
		if err != nil {
			return err
		}
		if !d.Online() {
			fmt.Printf("%s is %s; mount table unavailable.\n", d.Serial(), d.State)
			return nil
		}

		if remountMode != "" {
			var mode device.MountMode
			switch strings.ToLower(remountMode) {
			case "rw":
				mode = device.ModeReadWrite
			case "ro":
				mode = device.ModeReadOnly
			default:
				return fmt.Errorf("invalid remount mode %q, want rw or ro", remountMode)
			}
			ok, err := d.Remount(mode)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("remount %s as %s did not verify", d.Serial(), mode)
			}
		}

		entry := d.Mounts.System
		fmt.Printf("%s on %s (%s)\n", entry.Block, entry.Directory, strings.ToUpper(entry.Mode.String()))
		return nil
	},
}

func init() {
	mountCmd.Flags().StringVar(&remountMode, "remount", "", "remount the system partition as rw or ro before printing")
	rootCmd.AddCommand(mountCmd)
}
