package device

import (
	"reflect"
	"testing"
)

const busyboxOutput = `BusyBox v1.36.1 (2024-01-15 10:22:33 UTC) multi-call binary.
BusyBox is copyrighted by many authors between 1998-2015.
Licensed under GPLv2. See source distribution for detailed
copyright notices.

Usage: busybox [function [arguments]...]

Currently defined functions:
	[, [[, acpid, adjtimex, ar, arp, arping, ash,
	awk, basename, blockdev, brctl
`

func TestParseBusyBox(t *testing.T) {
	probe := parseBusyBox(busyboxOutput)

	if !probe.Installed {
		t.Fatal("Installed = false")
	}
	if probe.Version != "1.36.1" {
		t.Errorf("Version = %q, want 1.36.1", probe.Version)
	}
	want := []string{"[", "[[", "acpid", "adjtimex", "ar", "arp", "arping", "ash", "awk", "basename", "blockdev", "brctl"}
	if !reflect.DeepEqual(probe.Commands, want) {
		t.Errorf("Commands = %v, want %v", probe.Commands, want)
	}
}

func TestParseBusyBoxNotFound(t *testing.T) {
	probe := parseBusyBox("/system/bin/sh: busybox: not found\n")

	if probe.Installed {
		t.Error("Installed = true")
	}
	if probe.Version != "" {
		t.Errorf("Version = %q, want empty", probe.Version)
	}
	if len(probe.Commands) != 0 {
		t.Errorf("Commands = %v, want empty", probe.Commands)
	}
}

func TestParseBusyBoxEmptyFunctionList(t *testing.T) {
	// A present binary always declares at least one command, so an empty
	// list after stripping means the probe failed.
	raw := "BusyBox v1.36.1 multi-call binary.\n\nCurrently defined functions:\n   \n"
	probe := parseBusyBox(raw)
	if probe.Installed {
		t.Error("empty function list should report not installed")
	}
}

func TestParseBusyBoxMissingMarker(t *testing.T) {
	probe := parseBusyBox("BusyBox v1.36.1 multi-call binary.\nno function section\n")
	if probe.Installed {
		t.Error("missing marker should report not installed")
	}
}

func TestParseRootProbe(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantExists  bool
		wantVersion string
	}{
		{"present", "16 com.topjohnwu.magisk\n", true, "16 com.topjohnwu.magisk"},
		{"not found", "/system/bin/sh: su: not found\n", false, RootAbsentVersion},
		{"permission denied", "su: Permission denied\n", false, RootAbsentVersion},
		{"empty", "\n", false, RootAbsentVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := parseRootProbe(tt.raw)
			if probe.Exists != tt.wantExists {
				t.Errorf("Exists = %v, want %v", probe.Exists, tt.wantExists)
			}
			if probe.Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", probe.Version, tt.wantVersion)
			}
		})
	}
}
