package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FluidXR/questdoctor/internal/device"
	"github.com/FluidXR/questdoctor/internal/history"
)

type deviceRow struct {
	Serial  string `json:"serial"`
	State   string `json:"state"`
	Channel string `json:"channel"`
}

type deviceView struct {
	Serial     string            `json:"serial"`
	State      string            `json:"state"`
	Root       rootView          `json:"root"`
	Battery    batteryView       `json:"battery"`
	Properties map[string]string `json:"properties"`
	BusyBox    busyboxView       `json:"busybox"`
	Mount      mountView         `json:"mount"`
}

type rootView struct {
	Exists  bool   `json:"exists"`
	Version string `json:"version"`
}

type batteryView struct {
	Level             int    `json:"level"`
	Scale             int    `json:"scale"`
	Status            string `json:"status"`
	Health            string `json:"health"`
	Present           bool   `json:"present"`
	OnAcPower         bool   `json:"on_ac_power"`
	OnUsbPower        bool   `json:"on_usb_power"`
	OnWirelessPower   bool   `json:"on_wireless_power"`
	VoltageMillivolts int    `json:"voltage_mv"`
	TemperatureTenths int    `json:"temperature_tenths"`
	Technology        string `json:"technology"`
	Completeness      string `json:"completeness"`
}

type busyboxView struct {
	Installed bool     `json:"installed"`
	Version   string   `json:"version"`
	Commands  []string `json:"commands"`
}

type mountView struct {
	Directory    string `json:"directory"`
	Block        string `json:"block"`
	Mode         string `json:"mode"`
	Completeness string `json:"completeness"`
}

func viewOf(d *device.Device) deviceView {
	props := map[string]string{}
	for _, k := range d.Properties.Keys() {
		v, _ := d.Properties.Get(k)
		props[k] = v
	}
	return deviceView{
		Serial: d.Serial(),
		State:  d.State.String(),
		Root:   rootView{Exists: d.Root.Exists, Version: d.Root.Version},
		Battery: batteryView{
			Level:             d.Battery.Level,
			Scale:             d.Battery.Scale,
			Status:            d.Battery.StatusText(),
			Health:            d.Battery.HealthText(),
			Present:           d.Battery.Present,
			OnAcPower:         d.Battery.OnAcPower,
			OnUsbPower:        d.Battery.OnUsbPower,
			OnWirelessPower:   d.Battery.OnWirelessPower,
			VoltageMillivolts: d.Battery.VoltageMillivolts,
			TemperatureTenths: d.Battery.TemperatureTenths,
			Technology:        d.Battery.Technology,
			Completeness:      d.Battery.Completeness.String(),
		},
		Properties: props,
		BusyBox: busyboxView{
			Installed: d.BusyBox.Installed,
			Version:   d.BusyBox.Version,
			Commands:  d.BusyBox.Commands,
		},
		Mount: mountView{
			Directory:    d.Mounts.System.Directory,
			Block:        d.Mounts.System.Block,
			Mode:         d.Mounts.System.Mode.String(),
			Completeness: d.Mounts.Completeness.String(),
		},
	}
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	listings, err := s.session.ListDevices()
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "device discovery failed")
		return
	}
	rows := make([]deviceRow, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, deviceRow{
			Serial:  l.Serial,
			State:   s.session.ResolveState(l.Serial).String(),
			Channel: string(l.Channel),
		})
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	serial := chi.URLParam(r, "serial")
	d, err := device.New(s.session, serial, s.log)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.store != nil {
		snap := history.FromDevice(d)
		if err := s.store.Record(snap); err != nil {
			s.log.Debug().Err(err).Msg("record snapshot")
		} else if err := s.store.Prune(serial, s.keep); err != nil {
			s.log.Debug().Err(err).Msg("prune snapshots")
		}
	}
	s.respondJSON(w, http.StatusOK, viewOf(d))
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, http.StatusNotFound, "history recording disabled")
		return
	}
	serial := chi.URLParam(r, "serial")
	snaps, err := s.store.ForDevice(serial, 100)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "history query failed")
		return
	}
	s.respondJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleReboot(w http.ResponseWriter, r *http.Request) {
	serial := chi.URLParam(r, "serial")
	var body struct {
		Target string `json:"target"`
	}
	if r.Body != nil {
		// An empty body means a plain system reboot.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	if err := s.session.Reboot(serial, body.Target); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Completion is unobservable; callers poll device state afterward.
	s.respondJSON(w, http.StatusAccepted, map[string]string{
		"serial": serial,
		"target": body.Target,
		"status": "dispatched",
	})
}
