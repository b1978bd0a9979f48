// Package runner executes external host tools (adb, fastboot, aapt) and
// captures their output. Nothing above this package spawns processes.
package runner

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// TimeoutOutput is returned as the stdout of a timed-out invocation.
// Timeouts are an expected environmental condition, so they surface as a
// sentinel output string that parsers treat as malformed input, not as an
// error.
const TimeoutOutput = "error: timeout"

// Result holds the captured streams and exit code of one invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
}

// Runner executes named programs with arguments.
type Runner interface {
	// Run executes the program and waits for it, killing it once timeout
	// expires. A timeout yields Result{Stdout: TimeoutOutput, TimedOut: true}
	// and a nil error.
	Run(name string, args []string, timeout time.Duration) (Result, error)
	// RunDetached starts the program and does not wait for it. Completion
	// is unobservable by design.
	RunDetached(name string, args []string) error
	// RunNoTimeout executes the program with no deadline and returns its
	// combined output.
	RunNoTimeout(name string, args []string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// New creates an ExecRunner.
func New() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args, enforcing timeout when it is positive.
func (r *ExecRunner) Run(name string, args []string, timeout time.Duration) (Result, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return Result{Stdout: TimeoutOutput, TimedOut: true, ExitCode: -1}, nil
	}

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, err
	}
	return res, nil
}

// RunDetached starts name with args and abandons it.
func (r *ExecRunner) RunDetached(name string, args []string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child when it eventually exits so it does not linger as a
	// zombie for the life of the process.
	go func() { _ = cmd.Wait() }()
	return nil
}

// RunNoTimeout executes name with args and returns combined output.
func (r *ExecRunner) RunNoTimeout(name string, args []string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}
