package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

type dependency struct {
	name     string
	binary   func() string
	required bool
}

var dependencies = []dependency{
	{name: "ADB (Android Debug Bridge)", binary: func() string { return cfg.Tools.Adb }, required: true},
	{name: "fastboot", binary: func() string { return cfg.Tools.Fastboot }},
	{name: "aapt (Android Asset Packaging Tool)", binary: func() string { return cfg.Tools.Aapt }},
}

// checkDeps verifies that required external tools are installed. Only adb
// is strictly required; fastboot narrows discovery to one channel and
// aapt is only needed by the badging command.
func checkDeps(cmd *cobra.Command) error {
	for _, dep := range dependencies {
		bin := dep.binary()
		if _, err := exec.LookPath(bin); err == nil {
			continue
		}
		if dep.required {
			return fmt.Errorf("%s is required but %q was not found on PATH", dep.name, bin)
		}
		log.Debug().Str("binary", bin).Msgf("%s not found, related features degrade", dep.name)
	}
	return nil
}
