// Package runnertest provides a scripted Runner for tests.
package runnertest

import (
	"strings"
	"sync"
	"time"

	"github.com/FluidXR/questdoctor/internal/runner"
)

// Fake is a Runner that replays canned output keyed by the full command
// line ("name arg1 arg2 ...").
type Fake struct {
	mu sync.Mutex

	// Outputs maps a command line to the stdout it produces. Missing
	// entries yield empty output.
	Outputs map[string]string
	// OnRun, when set, observes every awaited invocation before the
	// canned output is returned.
	OnRun func(commandLine string)

	calls    []string
	detached []string
}

// New creates a Fake with the given canned outputs.
func New(outputs map[string]string) *Fake {
	if outputs == nil {
		outputs = map[string]string{}
	}
	return &Fake{Outputs: outputs}
}

func key(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// Run replays the canned output for the command line.
func (f *Fake) Run(name string, args []string, _ time.Duration) (runner.Result, error) {
	line := key(name, args)
	f.mu.Lock()
	f.calls = append(f.calls, line)
	onRun := f.OnRun
	f.mu.Unlock()
	if onRun != nil {
		onRun(line)
	}
	f.mu.Lock()
	out := f.Outputs[line]
	f.mu.Unlock()
	return runner.Result{Stdout: out}, nil
}

// RunDetached records the dispatched command line.
func (f *Fake) RunDetached(name string, args []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detached = append(f.detached, key(name, args))
	return nil
}

// RunNoTimeout replays canned output like Run.
func (f *Fake) RunNoTimeout(name string, args []string) (string, error) {
	res, err := f.Run(name, args, 0)
	return res.Stdout, err
}

// Set replaces the canned output for a command line.
func (f *Fake) Set(commandLine, output string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Outputs[commandLine] = output
}

// Calls returns every awaited command line in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many awaited invocations matched the command line.
func (f *Fake) CallCount(commandLine string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == commandLine {
			n++
		}
	}
	return n
}

// Detached returns every fire-and-forget command line in order.
func (f *Fake) Detached() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.detached...)
}
