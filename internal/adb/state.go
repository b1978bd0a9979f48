package adb

// ConnectionState classifies how (or whether) a device is currently
// reachable.
type ConnectionState int

const (
	// StateUnknown covers unrecognized state tokens and devices absent
	// from both discovery channels. It is a valid terminal classification
	// pending the next resolution, not an error.
	StateUnknown ConnectionState = iota
	StateOnline
	StateRecovery
	StateFastboot
	StateSideload
	StateUnauthorized
)

// String returns the lowercase token form of the state.
func (s ConnectionState) String() string {
	switch s {
	case StateOnline:
		return "online"
	case StateRecovery:
		return "recovery"
	case StateFastboot:
		return "fastboot"
	case StateSideload:
		return "sideload"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// parseStateToken maps a raw discovery token to a ConnectionState.
func parseStateToken(token string) ConnectionState {
	switch token {
	case "device":
		return StateOnline
	case "recovery":
		return StateRecovery
	case "fastboot":
		return StateFastboot
	case "sideload":
		return StateSideload
	case "unauthorized":
		return StateUnauthorized
	default:
		return StateUnknown
	}
}
