package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FluidXR/questdoctor/internal/device"
)

var probeCmd = &cobra.Command{
	Use:   "probe <serial>",
	Short: "Probe the device for busybox and root availability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := device.New(newSession(), args[0], log)
		if err != nil {
			return err
		}
		if !d.Online() {
			fmt.Printf("%s is %s; probes unavailable.\n", d.Serial(), d.State)
			return nil
		}

		if d.Root.Exists {
			fmt.Printf("root:    available (%s)\n", d.Root.Version)
		} else {
			fmt.Println("root:    not available")
		}
		if d.BusyBox.Installed {
			fmt.Printf("busybox: v%s\n", d.BusyBox.Version)
			fmt.Printf("         %s\n", strings.Join(d.BusyBox.Commands, ", "))
		} else {
			fmt.Println("busybox: not installed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
