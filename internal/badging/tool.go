package badging

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/FluidXR/questdoctor/internal/runner"
)

// ErrEmptyPath reports a caller passing an empty package path.
var ErrEmptyPath = errors.New("badging: empty package path")

// Tool wraps aapt invocations.
type Tool struct {
	run     runner.Runner
	path    string
	timeout time.Duration
	log     zerolog.Logger
}

// NewTool creates a Tool using the given aapt binary path.
func NewTool(run runner.Runner, path string, timeout time.Duration, log zerolog.Logger) *Tool {
	if path == "" {
		path = "aapt"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Tool{run: run, path: path, timeout: timeout, log: log}
}

// Dump runs "aapt dump badging" on the package file and parses the
// result. An empty path is a contract violation and returns an error;
// malformed dump output degrades to a partially filled Badging instead.
func (t *Tool) Dump(apkPath string) (Badging, error) {
	if apkPath == "" {
		return Badging{}, ErrEmptyPath
	}
	res, err := t.run.Run(t.path, []string{"dump", "badging", apkPath}, t.timeout)
	if err != nil {
		return Badging{}, fmt.Errorf("aapt dump badging %s: %w", apkPath, err)
	}
	t.log.Debug().Str("apk", apkPath).Int("exit", res.ExitCode).Msg("badging dumped")
	return Parse(apkPath, res.Stdout), nil
}
