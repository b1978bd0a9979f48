package adb

import "testing"

func TestParseStateToken(t *testing.T) {
	tests := []struct {
		token string
		want  ConnectionState
	}{
		{"device", StateOnline},
		{"recovery", StateRecovery},
		{"fastboot", StateFastboot},
		{"sideload", StateSideload},
		{"unauthorized", StateUnauthorized},
		{"offline", StateUnknown},
		{"DEVICE", StateUnknown},
		{"", StateUnknown},
		{"bootloader", StateUnknown},
	}
	for _, tt := range tests {
		if got := parseStateToken(tt.token); got != tt.want {
			t.Errorf("parseStateToken(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestConnectionStateString(t *testing.T) {
	if got := StateOnline.String(); got != "online" {
		t.Errorf("StateOnline.String() = %q", got)
	}
	if got := ConnectionState(99).String(); got != "unknown" {
		t.Errorf("invalid state String() = %q, want unknown", got)
	}
}
