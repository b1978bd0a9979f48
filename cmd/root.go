package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/FluidXR/questdoctor/internal/adb"
	"github.com/FluidXR/questdoctor/internal/config"
	"github.com/FluidXR/questdoctor/internal/history"
	"github.com/FluidXR/questdoctor/internal/runner"
)

// Version of QuestDoctor.
const Version = "0.3.0"

var (
	cfg     *config.Config
	log     zerolog.Logger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:     "questdoctor",
	Short:   "Diagnose Android devices over ADB and fastboot",
	Version: Version,
	Long: `QuestDoctor tracks attached Android devices across the adb and fastboot
discovery channels and turns their diagnostic command output (battery,
mounts, build properties, busybox, root) into typed snapshots.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log = newLogger(cfg.LogLevel, verbose)
		return checkDeps(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the console logger shared by all commands.
func newLogger(level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

// newSession builds the bridge session from the loaded config.
func newSession() *adb.Session {
	return adb.NewSession(runner.New(), adb.Options{
		AdbPath:      cfg.Tools.Adb,
		FastbootPath: cfg.Tools.Fastboot,
		Timeout:      cfg.CommandTimeout,
	}, log)
}

// openHistory opens the snapshot store, or returns nil when recording is
// disabled.
func openHistory() *history.DB {
	if !cfg.History.Enabled {
		return nil
	}
	db, err := history.Open(cfg.HistoryPath())
	if err != nil {
		log.Warn().Err(err).Msg("history database unavailable, snapshots will not be recorded")
		return nil
	}
	return db
}

// recordSnapshot persists one refresh into the history store.
func recordSnapshot(db *history.DB, snap history.Snapshot) {
	if db == nil {
		return
	}
	if err := db.Record(snap); err != nil {
		log.Warn().Err(err).Msg("could not record snapshot")
		return
	}
	if err := db.Prune(snap.Serial, cfg.History.Keep); err != nil {
		log.Debug().Err(err).Msg("could not prune snapshots")
	}
}
