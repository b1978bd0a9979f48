package device

import (
	"strings"
)

// BusyBoxProbe is the parsed busybox capability facet. Commands keep the
// order the binary declared them in.
type BusyBoxProbe struct {
	Installed bool
	Version   string
	Commands  []string
}

// RootProbe reports whether a working superuser binary exists. Version
// "-1" means probed and absent; an empty version means the probe never
// ran because the device was not online.
type RootProbe struct {
	Exists  bool
	Version string
}

// RootAbsentVersion is the version sentinel for a probed-and-absent
// superuser binary.
const RootAbsentVersion = "-1"

// busyboxFunctionsMarker separates the busybox banner from its declared
// command list.
const busyboxFunctionsMarker = "Currently defined functions:"

// parseBusyBox converts the output of invoking busybox with no arguments
// into a probe. A "not found" first line, or an empty command list after
// stripping, both mean the binary is not usable: a present busybox always
// declares at least one command.
func parseBusyBox(raw string) BusyBoxProbe {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 {
		return BusyBoxProbe{}
	}
	first := lines[0]
	if strings.Contains(first, "not found") {
		return BusyBoxProbe{}
	}

	fields := strings.Fields(first)
	if len(fields) < 2 {
		return BusyBoxProbe{}
	}
	version := strings.TrimPrefix(fields[1], "v")

	rest := -1
	for i, line := range lines {
		if strings.Contains(line, busyboxFunctionsMarker) {
			rest = i + 1
			break
		}
	}
	if rest < 0 {
		return BusyBoxProbe{}
	}

	var commands []string
	for _, chunk := range strings.Split(strings.Join(lines[rest:], "\n"), ",") {
		if name := strings.TrimSpace(chunk); name != "" {
			commands = append(commands, name)
		}
	}
	if len(commands) == 0 {
		return BusyBoxProbe{}
	}
	return BusyBoxProbe{Installed: true, Version: version, Commands: commands}
}

// parseRootProbe converts the output of the superuser version query into
// a probe. "not found" and "permission denied" markers both mean absent.
func parseRootProbe(raw string) RootProbe {
	line := strings.TrimSpace(raw)
	lower := strings.ToLower(line)
	if line == "" || strings.Contains(lower, "not found") || strings.Contains(lower, "permission denied") {
		return RootProbe{Version: RootAbsentVersion}
	}
	return RootProbe{Exists: true, Version: line}
}

// probeBusyBox invokes the busybox binary with no arguments.
func (d *Device) probeBusyBox() BusyBoxProbe {
	out, err := d.session.Shell(d.serial, "busybox")
	if err != nil {
		d.log.Debug().Err(err).Str("serial", d.serial).Msg("busybox probe failed")
		return BusyBoxProbe{}
	}
	return parseBusyBox(out)
}

// probeRoot queries the superuser binary version.
func (d *Device) probeRoot() RootProbe {
	out, err := d.session.Shell(d.serial, "su", "-v")
	if err != nil {
		d.log.Debug().Err(err).Str("serial", d.serial).Msg("root probe failed")
		return RootProbe{}
	}
	return parseRootProbe(out)
}
