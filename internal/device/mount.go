package device

import (
	"fmt"
	"strings"

	"github.com/FluidXR/questdoctor/internal/adb"
)

// MountMode is the access mode of a mounted filesystem.
type MountMode int

const (
	// ModeNone means the mode could not be determined.
	ModeNone MountMode = iota
	ModeReadWrite
	ModeReadOnly
)

// String returns the mount-option form of the mode.
func (m MountMode) String() string {
	switch m {
	case ModeReadWrite:
		return "rw"
	case ModeReadOnly:
		return "ro"
	default:
		return "none"
	}
}

// MountEntry is one row of the device mount table.
type MountEntry struct {
	Directory string
	Block     string
	Mode      MountMode
}

// MountTable is the parsed mount facet. System is the distinguished
// entry for the system partition.
type MountTable struct {
	System       MountEntry
	Completeness Completeness
	Gaps         []string
}

const systemDir = "/system"

// parseSystemMount scans raw mount output for the system partition entry.
// Both the "<block> on <dir> type ..." and the legacy "<block> <dir> ..."
// layouts are recognized; the first matching line wins and the scan stops
// there. A matched line that does not have the expected token layout
// degrades to the {"/system", "ERROR", none} sentinel instead of failing
// the whole refresh.
func parseSystemMount(raw string) MountTable {
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.Contains(line, " on "+systemDir+" "):
			return mountTableFor(parseTypedMountLine(line))
		case strings.Contains(line, " "+systemDir+" "):
			return mountTableFor(parseLegacyMountLine(line))
		}
	}
	return MountTable{
		System:       MountEntry{Directory: systemDir, Mode: ModeNone},
		Completeness: Partial,
		Gaps:         []string{"system mount line"},
	}
}

func mountTableFor(entry MountEntry, err error) MountTable {
	if err != nil {
		return MountTable{
			System:       MountEntry{Directory: systemDir, Block: "ERROR", Mode: ModeNone},
			Completeness: Partial,
			Gaps:         []string{err.Error()},
		}
	}
	return MountTable{System: entry, Completeness: Complete}
}

// parseTypedMountLine handles "<block> on <dir> type <fstype> <mode...>".
func parseTypedMountLine(line string) (MountEntry, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return MountEntry{}, fmt.Errorf("mount line has %d tokens, want 6", len(fields))
	}
	return MountEntry{
		Directory: fields[2],
		Block:     fields[0],
		Mode:      parseMountMode(fields[5]),
	}, nil
}

// parseLegacyMountLine handles "<block> <dir> <mode...>".
func parseLegacyMountLine(line string) (MountEntry, error) {
	fields := strings.Fields(line)
	idx := -1
	for i, f := range fields {
		if f == systemDir {
			idx = i
			break
		}
	}
	if idx < 1 || idx+1 >= len(fields) {
		return MountEntry{}, fmt.Errorf("legacy mount line has no mode token")
	}
	return MountEntry{
		Directory: fields[idx],
		Block:     fields[0],
		Mode:      parseMountMode(fields[idx+1]),
	}, nil
}

// parseMountMode matches the first two characters of the mode token,
// case-insensitively, against rw/ro. Tokens like "(rw,seclabel)" carry a
// leading parenthesis which is stripped first.
func parseMountMode(token string) MountMode {
	token = strings.TrimLeft(token, "(")
	if len(token) < 2 {
		return ModeNone
	}
	switch strings.ToLower(token[:2]) {
	case "rw":
		return ModeReadWrite
	case "ro":
		return ModeReadOnly
	default:
		return ModeNone
	}
}

// readMounts fetches and parses the current mount table.
func (d *Device) readMounts() MountTable {
	out, err := d.session.Shell(d.serial, "mount")
	if err != nil {
		d.log.Debug().Err(err).Str("serial", d.serial).Msg("mount read failed")
		return MountTable{}
	}
	return parseSystemMount(out)
}

// Remount asks the device to remount the system partition with the given
// mode, then re-reads the mount table and reports success only if the
// observed mode equals the requested one. The underlying tool can exit 0
// on a no-op failure, so the exit code is never trusted.
func (d *Device) Remount(mode MountMode) (bool, error) {
	if mode != ModeReadWrite && mode != ModeReadOnly {
		return false, fmt.Errorf("device: invalid remount mode %q", mode)
	}
	if d.State != adb.StateOnline {
		return false, nil
	}
	block := d.Mounts.System.Block
	if block == "" || block == "ERROR" {
		return false, nil
	}
	cmd := fmt.Sprintf("mount -o remount,%s %s %s", mode, block, systemDir)
	if _, err := d.session.SuShell(d.serial, cmd); err != nil {
		return false, nil
	}
	d.Mounts = d.readMounts()
	return d.Mounts.System.Mode == mode, nil
}
