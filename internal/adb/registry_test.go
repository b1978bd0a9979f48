package adb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/FluidXR/questdoctor/internal/runner/runnertest"
)

func newTestSession(fake *runnertest.Fake) *Session {
	return NewSession(fake, Options{}, zerolog.Nop())
}

func TestParseDeviceRows(t *testing.T) {
	out := "List of devices attached\n" +
		"* daemon started successfully\n" +
		"\n" +
		"X123\tdevice\n" +
		"lonely-serial\n" +
		"Y456\tunauthorized usb:1-2\n"
	rows := parseDeviceRows(out, ChannelBridge)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}
	if rows[0].Serial != "X123" || rows[0].Token != "device" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Serial != "Y456" || rows[1].Token != "unauthorized" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestListDevicesUnionsAndDedups(t *testing.T) {
	fake := runnertest.New(map[string]string{
		"adb devices":      "List of devices attached\nX123\tdevice\nSHARED\tdevice\n",
		"fastboot devices": "SHARED\tfastboot\nF900\tfastboot\n",
	})
	s := newTestSession(fake)

	devices, err := s.ListDevices()
	if err != nil {
		t.Fatal(err)
	}
	if len(devices) != 3 {
		t.Fatalf("got %d devices, want 3: %+v", len(devices), devices)
	}
	// The adb row wins for serials visible on both channels.
	for _, d := range devices {
		if d.Serial == "SHARED" && d.Channel != ChannelBridge {
			t.Errorf("SHARED resolved from %s, want %s", d.Channel, ChannelBridge)
		}
	}
	if devices[2].Serial != "F900" || devices[2].Channel != ChannelBootloader {
		t.Errorf("device 2 = %+v", devices[2])
	}
}

func TestResolveStatePrimaryThenSecondary(t *testing.T) {
	fake := runnertest.New(map[string]string{
		"adb devices":      "List of devices attached\nX123\trecovery\n",
		"fastboot devices": "F900\tfastboot\n",
	})
	s := newTestSession(fake)

	tests := []struct {
		serial string
		want   ConnectionState
	}{
		{"X123", StateRecovery},
		{"F900", StateFastboot},
		{"GHOST", StateUnknown},
		{"", StateUnknown},
	}
	for _, tt := range tests {
		if got := s.ResolveState(tt.serial); got != tt.want {
			t.Errorf("ResolveState(%q) = %v, want %v", tt.serial, got, tt.want)
		}
	}
}

func TestResolveStatePrefersPrimaryChannel(t *testing.T) {
	// A serial visible to both channels takes the adb token.
	fake := runnertest.New(map[string]string{
		"adb devices":      "X123\tunauthorized\n",
		"fastboot devices": "X123\tfastboot\n",
	})
	s := newTestSession(fake)
	if got := s.ResolveState("X123"); got != StateUnauthorized {
		t.Errorf("ResolveState = %v, want %v", got, StateUnauthorized)
	}
}

func TestWaitForAnyReturnsAfterNthPoll(t *testing.T) {
	fake := runnertest.New(map[string]string{})
	const wantPolls = 3
	fake.OnRun = func(line string) {
		if line == "adb devices" && fake.CallCount("adb devices") == wantPolls-1 {
			fake.Set("adb devices", "X123\tdevice\n")
		}
	}
	s := newTestSession(fake)

	devices, err := s.WaitForAny(context.Background(), time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if len(devices) != 1 || devices[0].Serial != "X123" {
		t.Fatalf("devices = %+v", devices)
	}
	if got := fake.CallCount("adb devices"); got != wantPolls {
		t.Errorf("polled %d times, want %d", got, wantPolls)
	}
}

func TestWaitForAnyHonorsCancellation(t *testing.T) {
	fake := runnertest.New(map[string]string{})
	s := newTestSession(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := s.WaitForAny(ctx, 10*time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	// Cancellation is checked once per interval, so the call returns
	// within roughly one interval.
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("WaitForAny took %v after cancellation", elapsed)
	}
}

func TestShellContractErrors(t *testing.T) {
	s := newTestSession(runnertest.New(nil))
	if _, err := s.Shell("", "ls"); !errors.Is(err, ErrEmptySerial) {
		t.Errorf("Shell err = %v, want ErrEmptySerial", err)
	}
	if _, err := s.SuShell("", "id"); !errors.Is(err, ErrEmptySerial) {
		t.Errorf("SuShell err = %v, want ErrEmptySerial", err)
	}
	if err := s.Reboot("", "recovery"); !errors.Is(err, ErrEmptySerial) {
		t.Errorf("Reboot err = %v, want ErrEmptySerial", err)
	}
}

func TestRebootDispatchesDetached(t *testing.T) {
	fake := runnertest.New(nil)
	s := newTestSession(fake)

	if err := s.Reboot("X123", "recovery"); err != nil {
		t.Fatal(err)
	}
	if err := s.Reboot("X123", "system"); err != nil {
		t.Fatal(err)
	}
	detached := fake.Detached()
	if len(detached) != 2 {
		t.Fatalf("detached = %v", detached)
	}
	if detached[0] != "adb -s X123 reboot recovery" {
		t.Errorf("detached[0] = %q", detached[0])
	}
	// A plain system reboot passes no target argument.
	if detached[1] != "adb -s X123 reboot" {
		t.Errorf("detached[1] = %q", detached[1])
	}
}
