package adb

import (
	"bufio"
	"context"
	"strings"
	"time"
)

// Channel names the discovery source a listing row came from.
type Channel string

const (
	// ChannelBridge is the primary adb server device list.
	ChannelBridge Channel = "adb"
	// ChannelBootloader is the secondary fastboot device list.
	ChannelBootloader Channel = "fastboot"
)

// Listing is one discovered device: its serial and the raw state token
// reported by the channel that saw it.
type Listing struct {
	Serial  string
	Token   string
	Channel Channel
}

// ListDevices unions the adb and fastboot device lists. Serials seen on
// both channels are kept once, with the adb row winning. Order follows
// first appearance.
func (s *Session) ListDevices() ([]Listing, error) {
	var (
		out  []Listing
		seen = map[string]bool{}
	)
	add := func(rows []Listing) {
		for _, row := range rows {
			if seen[row.Serial] {
				continue
			}
			seen[row.Serial] = true
			out = append(out, row)
		}
	}

	primary, err := s.run.Run(s.adbPath, []string{"devices"}, s.timeout)
	if err != nil {
		return nil, err
	}
	add(parseDeviceRows(primary.Stdout, ChannelBridge))

	secondary, err := s.run.Run(s.fastbootPath, []string{"devices"}, s.timeout)
	if err != nil {
		// fastboot missing or broken only narrows discovery; the adb rows
		// are still valid.
		s.log.Debug().Err(err).Msg("fastboot device listing failed")
		return out, nil
	}
	add(parseDeviceRows(secondary.Stdout, ChannelBootloader))
	return out, nil
}

// ResolveState classifies a device by querying the adb list first and the
// fastboot list only when the serial is absent from it. A unit can
// legitimately be visible to only one channel depending on its mode.
// Command failures and absence from both channels yield StateUnknown.
func (s *Session) ResolveState(serial string) ConnectionState {
	if serial == "" {
		return StateUnknown
	}
	if res, err := s.run.Run(s.adbPath, []string{"devices"}, s.timeout); err == nil {
		for _, row := range parseDeviceRows(res.Stdout, ChannelBridge) {
			if row.Serial == serial {
				return parseStateToken(row.Token)
			}
		}
	}
	if res, err := s.run.Run(s.fastbootPath, []string{"devices"}, s.timeout); err == nil {
		for _, row := range parseDeviceRows(res.Stdout, ChannelBootloader) {
			if row.Serial == serial {
				return parseStateToken(row.Token)
			}
		}
	}
	return StateUnknown
}

// WaitForAny polls ListDevices at the given interval until at least one
// device appears or ctx is cancelled. Cancellation is checked once per
// interval, so the call returns within one interval of ctx being done.
func (s *Session) WaitForAny(ctx context.Context, interval time.Duration) ([]Listing, error) {
	if interval <= 0 {
		interval = time.Second
	}
	for {
		devices, err := s.ListDevices()
		if err != nil {
			return nil, err
		}
		if len(devices) > 0 {
			return devices, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// parseDeviceRows extracts serial/token rows from raw list output,
// skipping banner lines, blank lines, and lines without a token column.
func parseDeviceRows(output string, ch Channel) []Listing {
	var rows []Listing
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "List of") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		rows = append(rows, Listing{Serial: fields[0], Token: fields[1], Channel: ch})
	}
	return rows
}
