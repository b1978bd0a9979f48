package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FluidXR/questdoctor/internal/device"
	"github.com/FluidXR/questdoctor/internal/history"
)

var infoCmd = &cobra.Command{
	Use:   "info <serial>",
	Short: "Refresh and print every facet of one device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session := newSession()
		d, err := device.New(session, args[0], log)
		if err != nil {
			return err
		}

		db := openHistory()
		if db != nil {
			defer db.Close()
		}
		recordSnapshot(db, history.FromDevice(d))

		fmt.Printf("%s  [%s]\n", d.Serial(), d.State)
		if !d.Online() {
			fmt.Println("Device is not online; facets are unavailable.")
			return nil
		}

		fmt.Printf("  Root:     exists=%v version=%s\n", d.Root.Exists, d.Root.Version)
		fmt.Printf("  Battery:  %d%% (%s, %s) %dmV %.1f°C [%s]\n",
			d.Battery.Level, d.Battery.StatusText(), d.Battery.HealthText(),
			d.Battery.VoltageMillivolts, float64(d.Battery.TemperatureTenths)/10,
			d.Battery.Completeness)
		fmt.Printf("  Props:    %d properties\n", d.Properties.Len())
		if fp, ok := d.Properties.Get("ro.build.fingerprint"); ok {
			fmt.Printf("            %s\n", fp)
		}
		if d.BusyBox.Installed {
			fmt.Printf("  BusyBox:  v%s (%d commands)\n", d.BusyBox.Version, len(d.BusyBox.Commands))
		} else {
			fmt.Println("  BusyBox:  not installed")
		}
		mode := strings.ToUpper(d.Mounts.System.Mode.String())
		fmt.Printf("  Mount:    %s on %s (%s) [%s]\n",
			d.Mounts.System.Block, d.Mounts.System.Directory, mode, d.Mounts.Completeness)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
