package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FluidXR/questdoctor/internal/device"
)

// Snapshot is one recorded refresh of one device.
type Snapshot struct {
	ID                string
	Serial            string
	State             string
	BatteryLevel      int
	BatteryStatus     string
	VoltageMillivolts int
	TemperatureTenths int
	Fingerprint       string
	RootAvailable     bool
	TakenAt           time.Time
}

// FromDevice builds a Snapshot from the device's current facets.
func FromDevice(d *device.Device) Snapshot {
	fingerprint, _ := d.Properties.Get("ro.build.fingerprint")
	return Snapshot{
		ID:                uuid.NewString(),
		Serial:            d.Serial(),
		State:             d.State.String(),
		BatteryLevel:      d.Battery.Level,
		BatteryStatus:     d.Battery.StatusText(),
		VoltageMillivolts: d.Battery.VoltageMillivolts,
		TemperatureTenths: d.Battery.TemperatureTenths,
		Fingerprint:       fingerprint,
		RootAvailable:     d.HasRoot(),
		TakenAt:           time.Now().UTC(),
	}
}

// Record inserts a snapshot row.
func (h *DB) Record(s Snapshot) error {
	_, err := h.db.Exec(
		`INSERT INTO snapshots
		   (id, serial, state, battery_level, battery_status, voltage_mv,
		    temperature_tenths, fingerprint, root_available, taken_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Serial, s.State, s.BatteryLevel, s.BatteryStatus,
		s.VoltageMillivolts, s.TemperatureTenths, s.Fingerprint,
		s.RootAvailable, s.TakenAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	return nil
}

// ForDevice returns the most recent snapshots for a serial, newest first.
func (h *DB) ForDevice(serial string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.db.Query(
		`SELECT id, serial, state, battery_level, battery_status, voltage_mv,
		        temperature_tenths, fingerprint, root_available, taken_at
		 FROM snapshots WHERE serial = ?
		 ORDER BY taken_at DESC LIMIT ?`,
		serial, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			s     Snapshot
			taken int64
		)
		if err := rows.Scan(&s.ID, &s.Serial, &s.State, &s.BatteryLevel,
			&s.BatteryStatus, &s.VoltageMillivolts, &s.TemperatureTenths,
			&s.Fingerprint, &s.RootAvailable, &taken); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.TakenAt = time.Unix(taken, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Latest returns the newest snapshot for a serial, if any.
func (h *DB) Latest(serial string) (Snapshot, bool, error) {
	snaps, err := h.ForDevice(serial, 1)
	if err != nil {
		return Snapshot{}, false, err
	}
	if len(snaps) == 0 {
		return Snapshot{}, false, nil
	}
	return snaps[0], true, nil
}

// Prune deletes all but the newest keep snapshots for a serial.
func (h *DB) Prune(serial string, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := h.db.Exec(
		`DELETE FROM snapshots WHERE serial = ? AND id NOT IN (
		   SELECT id FROM snapshots WHERE serial = ?
		   ORDER BY taken_at DESC LIMIT ?)`,
		serial, serial, keep,
	)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
