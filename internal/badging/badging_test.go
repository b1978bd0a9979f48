package badging

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/FluidXR/questdoctor/internal/runner/runnertest"
)

const badgingDump = `package: name='com.x' versionCode='3' versionName='1.0'
sdkVersion:'23'
targetSdkVersion:'33'
uses-permission: name='android.permission.INTERNET'
uses-permission: name='android.permission.CAMERA'
uses-permission: name='android.permission.INTERNET'
application-label:'Example'
application: label='Example' icon='res/mipmap-anydpi-v26/ic_launcher.png'
launchable-activity: name='com.x.MainActivity'  label='Example' icon=''
feature-group: label=''
densities: '160' '240' '320' '480' '640' '65534'
`

func TestParse(t *testing.T) {
	b := Parse("example.apk", badgingDump)

	if b.Source != "example.apk" {
		t.Errorf("Source = %q", b.Source)
	}
	if b.Package.Name != "com.x" || b.Package.VersionCode != "3" || b.Package.VersionName != "1.0" {
		t.Errorf("Package = %+v", b.Package)
	}
	if b.Application.Label != "Example" {
		t.Errorf("Application.Label = %q", b.Application.Label)
	}
	if b.Application.Icon != "res/mipmap-anydpi-v26/ic_launcher.png" {
		t.Errorf("Application.Icon = %q", b.Application.Icon)
	}
	if b.MainActivity.Name != "com.x.MainActivity" || b.MainActivity.Label != "Example" {
		t.Errorf("MainActivity = %+v", b.MainActivity)
	}
	if b.MainActivity.Icon != "" {
		t.Errorf("MainActivity.Icon = %q, want empty", b.MainActivity.Icon)
	}
	if b.SdkVersion != "23" || b.TargetSdkVersion != "33" {
		t.Errorf("sdk = %q/%q", b.SdkVersion, b.TargetSdkVersion)
	}
	// Appearance order, duplicates preserved.
	wantPerms := []string{
		"android.permission.INTERNET",
		"android.permission.CAMERA",
		"android.permission.INTERNET",
	}
	if !reflect.DeepEqual(b.Permissions, wantPerms) {
		t.Errorf("Permissions = %v", b.Permissions)
	}
	wantDensities := []int{160, 240, 320, 480, 640, 65534}
	if !reflect.DeepEqual(b.Densities, wantDensities) {
		t.Errorf("Densities = %v", b.Densities)
	}
}

func TestParseMissingSectionsDegrade(t *testing.T) {
	b := Parse("x.apk", "package: name='com.x' versionCode='3' versionName='1.0'\n")

	if b.Package.Name != "com.x" {
		t.Errorf("Package.Name = %q", b.Package.Name)
	}
	if b.Application != (ApplicationInfo{}) {
		t.Errorf("Application = %+v, want zero", b.Application)
	}
	if b.MainActivity != (ActivityInfo{}) {
		t.Errorf("MainActivity = %+v, want zero", b.MainActivity)
	}
	if len(b.Densities) != 0 {
		t.Errorf("Densities = %v, want empty", b.Densities)
	}
	if len(b.Permissions) != 0 {
		t.Errorf("Permissions = %v, want empty", b.Permissions)
	}
}

func TestParseAbsentMarkerWithinLine(t *testing.T) {
	// The package line is present but lacks the version markers.
	b := Parse("x.apk", "package: name='com.x'\n")
	if b.Package.Name != "com.x" {
		t.Errorf("Name = %q", b.Package.Name)
	}
	if b.Package.VersionCode != "" || b.Package.VersionName != "" {
		t.Errorf("versions = %q/%q, want empty", b.Package.VersionCode, b.Package.VersionName)
	}
}

func TestParseLegacyPermissionForm(t *testing.T) {
	b := Parse("x.apk", "uses-permission:'android.permission.READ_LOGS'\n")
	want := []string{"android.permission.READ_LOGS"}
	if !reflect.DeepEqual(b.Permissions, want) {
		t.Errorf("Permissions = %v, want %v", b.Permissions, want)
	}
}

func TestParseEmptyInput(t *testing.T) {
	b := Parse("x.apk", "")
	if b.Package != (PackageInfo{}) {
		t.Errorf("Package = %+v, want zero", b.Package)
	}
}

func TestToolDumpEmptyPath(t *testing.T) {
	tool := NewTool(runnertest.New(nil), "aapt", 0, zerolog.Nop())
	if _, err := tool.Dump(""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("err = %v, want ErrEmptyPath", err)
	}
}

func TestToolDump(t *testing.T) {
	fake := runnertest.New(map[string]string{
		"aapt dump badging example.apk": badgingDump,
	})
	tool := NewTool(fake, "aapt", 0, zerolog.Nop())

	b, err := tool.Dump("example.apk")
	if err != nil {
		t.Fatal(err)
	}
	if b.Package.Name != "com.x" {
		t.Errorf("Package.Name = %q", b.Package.Name)
	}
}
