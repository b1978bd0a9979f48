package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FluidXR/questdoctor/internal/device"
)

var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "Read and write device build properties",
}

var propsListCmd = &cobra.Command{
	Use:   "list <serial>",
	Short: "List all build properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := device.New(newSession(), args[0], log)
		if err != nil {
			return err
		}
		if !d.Online() {
			fmt.Printf("%s is %s; properties unavailable.\n", d.Serial(), d.State)
			return nil
		}
		for _, key := range d.Properties.Keys() {
			value, _ := d.Properties.Get(key)
			fmt.Printf("[%s]: [%s]\n", key, value)
		}
		return nil
	},
}

var propsGetCmd = &cobra.Command{
	Use:   "get <serial> <key>",
	Short: "Print one build property",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := device.New(newSession(), args[0], log)
		if err != nil {
			return err
		}
		value, ok := d.Properties.Get(args[1])
		if !ok {
			return fmt.Errorf("property %q not present on %s", args[1], d.Serial())
		}
		fmt.Println(value)
		return nil
	},
}

var propsSetCmd = &cobra.Command{
	Use:   "set <serial> <key> <value>",
	Short: "Write one build property (requires root) and verify it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := device.New(newSession(), args[0], log)
		if err != nil {
			return err
		}
		ok, err := d.SetProperty(args[1], args[2])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("could not set %q on %s (needs an online, rooted device and an existing key)", args[1], d.Serial())
		}
		fmt.Printf("%s = %s\n", args[1], args[2])
		return nil
	},
}

func init() {
	propsCmd.AddCommand(propsListCmd)
	propsCmd.AddCommand(propsGetCmd)
	propsCmd.AddCommand(propsSetCmd)
	rootCmd.AddCommand(propsCmd)
}
