package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rebootCmd = &cobra.Command{
	Use:       "reboot <serial> [system|recovery|bootloader]",
	Short:     "Reboot a device without waiting for completion",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"system", "recovery", "bootloader"},
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "system"
		if len(args) == 2 {
			target = args[1]
		}
		switch target {
		case "system", "recovery", "bootloader":
		default:
			return fmt.Errorf("invalid reboot target %q", target)
		}

		if err := newSession().Reboot(args[0], target); err != nil {
			return fmt.Errorf("reboot %s: %w", args[0], err)
		}
		fmt.Printf("Reboot to %s dispatched; poll `questdoctor devices` to confirm.\n", target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebootCmd)
}
