package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history <serial>",
	Short: "Show recorded refresh snapshots for a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := openHistory()
		if db == nil {
			return fmt.Errorf("history recording is disabled in the config")
		}
		defer db.Close()

		snaps, err := db.ForDevice(args[0], historyLimit)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		if len(snaps) == 0 {
			fmt.Println("No snapshots recorded.")
			return nil
		}
		for _, s := range snaps {
			fmt.Printf("%s  %-12s battery=%3d%% (%s) %dmV root=%v\n",
				s.TakenAt.Format("2006-01-02 15:04:05"), s.State,
				s.BatteryLevel, s.BatteryStatus, s.VoltageMillivolts, s.RootAvailable)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of snapshots to show")
	rootCmd.AddCommand(historyCmd)
}
