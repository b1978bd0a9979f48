package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FluidXR/questdoctor/internal/badging"
	"github.com/FluidXR/questdoctor/internal/runner"
)

var badgingCmd = &cobra.Command{
	Use:   "badging <apk-path>",
	Short: "Parse the manifest summary of an installable package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("package file: %w", err)
		}

		tool := badging.NewTool(runner.New(), cfg.Tools.Aapt, cfg.CommandTimeout, log)
		b, err := tool.Dump(path)
		if err != nil {
			return err
		}

		fmt.Printf("Package:      %s (code %s, name %s)\n",
			b.Package.Name, b.Package.VersionCode, b.Package.VersionName)
		fmt.Printf("Application:  %s  icon=%s\n", b.Application.Label, b.Application.Icon)
		fmt.Printf("Launchable:   %s (%s)\n", b.MainActivity.Name, b.MainActivity.Label)
		fmt.Printf("SDK:          min=%s target=%s\n", b.SdkVersion, b.TargetSdkVersion)
		if len(b.Permissions) > 0 {
			fmt.Printf("Permissions:  %s\n", strings.Join(b.Permissions, "\n              "))
		}
		if len(b.Densities) > 0 {
			fmt.Printf("Densities:    %v\n", b.Densities)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(badgingCmd)
}
