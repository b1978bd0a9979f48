// Package adb brokers discovery and shell execution for devices reachable
// through the adb and fastboot host tools.
package adb

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/FluidXR/questdoctor/internal/runner"
)

// ErrEmptySerial reports a caller passing an empty device identifier.
var ErrEmptySerial = errors.New("adb: empty device serial")

// Session owns one host-side bridge session: the runner used to invoke
// the external tools, the tool paths, and a logger. It is constructed and
// passed explicitly; there is no process-wide session.
type Session struct {
	run          runner.Runner
	adbPath      string
	fastbootPath string
	timeout      time.Duration
	log          zerolog.Logger
}

// Options configures a Session. Zero fields fall back to defaults.
type Options struct {
	AdbPath      string
	FastbootPath string
	// Timeout bounds every awaited tool invocation.
	Timeout time.Duration
}

// DefaultTimeout bounds tool invocations when Options.Timeout is unset.
const DefaultTimeout = 15 * time.Second

// NewSession creates a Session on top of the given runner.
func NewSession(run runner.Runner, opts Options, log zerolog.Logger) *Session {
	if opts.AdbPath == "" {
		opts.AdbPath = "adb"
	}
	if opts.FastbootPath == "" {
		opts.FastbootPath = "fastboot"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Session{
		run:          run,
		adbPath:      opts.AdbPath,
		fastbootPath: opts.FastbootPath,
		timeout:      opts.Timeout,
		log:          log,
	}
}

// Connect connects to a wireless device.
func (s *Session) Connect(host string, port int) error {
	if host == "" {
		return errors.New("adb: empty host")
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	res, err := s.run.Run(s.adbPath, []string{"connect", addr}, s.timeout)
	if err != nil {
		return fmt.Errorf("adb connect %s: %w", addr, err)
	}
	if strings.Contains(res.Stdout, "connected") {
		return nil
	}
	return fmt.Errorf("adb connect %s: %s", addr, strings.TrimSpace(res.Stdout+res.Stderr))
}
