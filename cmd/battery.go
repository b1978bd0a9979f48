package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FluidXR/questdoctor/internal/device"
)

var batteryCmd = &cobra.Command{
	Use:   "battery <serial>",
	Short: "Print the current battery snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := device.New(newSession(), args[0], log)
		if err != nil {
			return err
		}
		if !d.Online() {
			fmt.Printf("%s is %s; battery data unavailable.\n", d.Serial(), d.State)
			return nil
		}

		b := d.Battery
		fmt.Printf("Level:       %d/%d\n", b.Level, b.Scale)
		fmt.Printf("Status:      %s\n", b.StatusText())
		fmt.Printf("Health:      %s\n", b.HealthText())
		fmt.Printf("Present:     %v\n", b.Present)
		fmt.Printf("Power:       ac=%v usb=%v wireless=%v\n", b.OnAcPower, b.OnUsbPower, b.OnWirelessPower)
		fmt.Printf("Voltage:     %d mV\n", b.VoltageMillivolts)
		fmt.Printf("Temperature: %.1f°C\n", float64(b.TemperatureTenths)/10)
		fmt.Printf("Technology:  %s\n", b.Technology)
		if len(b.Gaps) > 0 {
			fmt.Printf("Unparsed:    %v\n", b.Gaps)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batteryCmd)
}
