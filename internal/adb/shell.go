package adb

import (
	"strings"
)

// Shell runs a command on the device as the regular shell user and
// returns the combined output.
func (s *Session) Shell(serial string, args ...string) (string, error) {
	if serial == "" {
		return "", ErrEmptySerial
	}
	full := append([]string{"-s", serial, "shell"}, args...)
	res, err := s.run.Run(s.adbPath, full, s.timeout)
	if err != nil {
		return "", err
	}
	return res.Stdout + res.Stderr, nil
}

// SuShell runs a command on the device through the superuser binary and
// returns the combined output.
func (s *Session) SuShell(serial, command string) (string, error) {
	if serial == "" {
		return "", ErrEmptySerial
	}
	res, err := s.run.Run(s.adbPath, []string{"-s", serial, "shell", "su", "-c", command}, s.timeout)
	if err != nil {
		return "", err
	}
	return res.Stdout + res.Stderr, nil
}

// ShellExitCode runs a device command and reports only its exit code.
func (s *Session) ShellExitCode(serial string, args ...string) (int, error) {
	if serial == "" {
		return -1, ErrEmptySerial
	}
	full := append([]string{"-s", serial, "shell"}, args...)
	res, err := s.run.Run(s.adbPath, full, s.timeout)
	if err != nil {
		return -1, err
	}
	return res.ExitCode, nil
}

// ShellDetached dispatches a device command without awaiting it.
// Completion is unobservable; callers needing confirmation poll
// connection state afterward.
func (s *Session) ShellDetached(serial string, args ...string) error {
	if serial == "" {
		return ErrEmptySerial
	}
	full := append([]string{"-s", serial, "shell"}, args...)
	return s.run.RunDetached(s.adbPath, full)
}

// Reboot asks the device to reboot into the named target ("", "recovery"
// or "bootloader") and does not wait for it.
func (s *Session) Reboot(serial, target string) error {
	if serial == "" {
		return ErrEmptySerial
	}
	args := []string{"-s", serial, "reboot"}
	if t := strings.TrimSpace(target); t != "" && t != "system" {
		args = append(args, t)
	}
	return s.run.RunDetached(s.adbPath, args)
}
