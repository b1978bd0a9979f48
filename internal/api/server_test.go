package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/FluidXR/questdoctor/internal/adb"
	"github.com/FluidXR/questdoctor/internal/history"
	"github.com/FluidXR/questdoctor/internal/runner/runnertest"
)

const testBatteryDump = `Current Battery Service state:
  AC powered: false
  USB powered: true
  Wireless powered: false
  status: 2
  health: 2
  present: true
  level: 47
  scale: 100
  voltage: 3999
  temperature: 271
  technology: Li-ion
`

func onlineFake() *runnertest.Fake {
	return runnertest.New(map[string]string{
		"adb devices":                       "List of devices attached\nX123\tdevice\n",
		"fastboot devices":                  "",
		"adb -s X123 shell su -v":           "16 com.topjohnwu.magisk\n",
		"adb -s X123 shell dumpsys battery": testBatteryDump,
		"adb -s X123 shell getprop":         "[ro.product.model]: [Quest 3]\n\n[ro.build.fingerprint]: [oculus/eureka:14/SQ3A/1:user]",
		"adb -s X123 shell busybox":         "/system/bin/sh: busybox: not found\n",
		"adb -s X123 shell mount":           "/dev/block/dm-5 on /system type ext4 (ro,seclabel)\n",
	})
}

func newTestServer(t *testing.T, fake *runnertest.Fake, store *history.DB) *Server {
	t.Helper()
	session := adb.NewSession(fake, adb.Options{}, zerolog.Nop())
	return NewServer(session, store, 10, zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestListDevices(t *testing.T) {
	s := newTestServer(t, onlineFake(), nil)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/devices")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var rows []deviceRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Serial != "X123" || rows[0].State != "online" || rows[0].Channel != "adb" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestGetDevice(t *testing.T) {
	s := newTestServer(t, onlineFake(), nil)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/devices/X123")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var view deviceView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.Serial != "X123" || view.State != "online" {
		t.Errorf("view = %+v", view)
	}
	if !view.Root.Exists {
		t.Error("root not reported")
	}
	if view.Battery.Level != 47 || view.Battery.Status != "Charging" {
		t.Errorf("battery = %+v", view.Battery)
	}
	if view.Properties["ro.product.model"] != "Quest 3" {
		t.Errorf("properties = %v", view.Properties)
	}
	if view.Mount.Mode != "ro" {
		t.Errorf("mount = %+v", view.Mount)
	}
}

func TestGetDeviceRecordsSnapshot(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	s := newTestServer(t, onlineFake(), store)
	if rec := doRequest(t, s, http.MethodGet, "/api/v1/devices/X123"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	snap, ok, err := store.Latest("X123")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("no snapshot recorded")
	}
	if snap.BatteryLevel != 47 || !strings.Contains(snap.Fingerprint, "oculus/eureka") {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestGetHistoryDisabled(t *testing.T) {
	s := newTestServer(t, onlineFake(), nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/devices/X123/history")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRebootDispatches(t *testing.T) {
	fake := onlineFake()
	s := newTestServer(t, fake, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/devices/X123/reboot",
		strings.NewReader(`{"target":"recovery"}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	detached := fake.Detached()
	if len(detached) != 1 || detached[0] != "adb -s X123 reboot recovery" {
		t.Errorf("detached = %v", detached)
	}
}

func TestRebootEmptyBodyMeansSystem(t *testing.T) {
	fake := onlineFake()
	s := newTestServer(t, fake, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/devices/X123/reboot")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	detached := fake.Detached()
	if len(detached) != 1 || detached[0] != "adb -s X123 reboot" {
		t.Errorf("detached = %v", detached)
	}
}
