// Package device models one attached unit: its resolved connection state
// and the lazily rebuilt facets parsed from on-device diagnostic output.
package device

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/FluidXR/questdoctor/internal/adb"
)

// Completeness marks how much of a facet snapshot could be populated.
type Completeness int

const (
	// Unavailable means the device was not online, so the facet carries
	// only sentinel values.
	Unavailable Completeness = iota
	// Partial means the output was parsed but named fields were missing
	// or malformed.
	Partial
	// Complete means every expected field was parsed.
	Complete
)

// String returns a short label for the completeness level.
func (c Completeness) String() string {
	switch c {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	default:
		return "unavailable"
	}
}

// Device aggregates the connection state and facet snapshots of one
// physical unit. The serial is immutable for the life of the value.
// Facets are replaced wholesale by Refresh, never mutated in place, so a
// reader always observes an internally consistent snapshot. A Device is
// owned by a single logical session; concurrent refreshes of the same
// Device require external synchronization.
type Device struct {
	serial  string
	session *adb.Session
	log     zerolog.Logger

	State      adb.ConnectionState
	Root       RootProbe
	Battery    BatterySnapshot
	Properties BuildProperties
	BusyBox    BusyBoxProbe
	Mounts     MountTable
}

// New creates a Device for a serial already confirmed by discovery and
// populates state and all facets synchronously.
func New(session *adb.Session, serial string, log zerolog.Logger) (*Device, error) {
	if session == nil {
		return nil, errors.New("device: nil session")
	}
	if serial == "" {
		return nil, adb.ErrEmptySerial
	}
	d := &Device{serial: serial, session: session, log: log}
	d.Refresh()
	return d, nil
}

// Serial returns the immutable device identifier.
func (d *Device) Serial() string {
	return d.serial
}

// Online reports whether the device is currently in the online state.
func (d *Device) Online() bool {
	return d.State == adb.StateOnline
}

// HasRoot reports whether the last refresh found a working superuser
// binary.
func (d *Device) HasRoot() bool {
	return d.State == adb.StateOnline && d.Root.Exists
}

// Refresh re-resolves the connection state and rebuilds every facet.
// The root probe runs first because later operations consult HasRoot;
// the remaining facets are rebuilt from fresh command output and never
// read each other's previous snapshots. When the device is not online,
// every facet is reset to its unavailable sentinels so no stale positive
// data survives a disconnect.
func (d *Device) Refresh() {
	d.State = d.session.ResolveState(d.serial)
	if d.State != adb.StateOnline {
		d.Root = RootProbe{}
		d.Battery = unavailableBattery()
		d.Properties = BuildProperties{}
		d.BusyBox = BusyBoxProbe{}
		d.Mounts = MountTable{}
		d.log.Debug().Str("serial", d.serial).Stringer("state", d.State).
			Msg("device not online, facets reset to sentinels")
		return
	}
	d.Root = d.probeRoot()
	d.Battery = d.readBattery()
	d.Properties = d.readProperties()
	d.BusyBox = d.probeBusyBox()
	d.Mounts = d.readMounts()
	d.log.Debug().Str("serial", d.serial).
		Int("battery_level", d.Battery.Level).
		Bool("root", d.Root.Exists).
		Msg("device refreshed")
}
