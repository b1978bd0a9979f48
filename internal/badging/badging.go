// Package badging parses the manifest summary that "aapt dump badging"
// prints for an installable package.
package badging

import (
	"strconv"
	"strings"
)

// PackageInfo identifies the package.
type PackageInfo struct {
	Name        string
	VersionCode string
	VersionName string
}

// ApplicationInfo carries the application label and icon path.
type ApplicationInfo struct {
	Label string
	Icon  string
}

// ActivityInfo describes the launchable activity.
type ActivityInfo struct {
	Name  string
	Label string
	Icon  string
}

// Badging is the parsed dump. String fields default to empty, never to a
// null-like placeholder, so a partial dump still renders.
type Badging struct {
	Source           string
	Package          PackageInfo
	Application      ApplicationInfo
	MainActivity     ActivityInfo
	SdkVersion       string
	TargetSdkVersion string
	// Permissions keeps appearance order; duplicates are preserved.
	Permissions []string
	Densities   []int
}

// Parse converts raw dump output into a Badging. Every value in this
// format is single-quote delimited, so each field is captured as the run
// between its marker and the next quote. A structurally absent marker
// leaves that sub-record at its zero value; unrecognized lines are
// ignored.
func Parse(source, raw string) Badging {
	b := Badging{Source: source}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "package:"):
			b.Package = PackageInfo{
				Name:        quoted(line, "name='"),
				VersionCode: quoted(line, "versionCode='"),
				VersionName: quoted(line, "versionName='"),
			}
		case strings.HasPrefix(line, "application:"):
			b.Application = ApplicationInfo{
				Label: quoted(line, "label='"),
				Icon:  quoted(line, "icon='"),
			}
		case strings.HasPrefix(line, "launchable-activity:"):
			b.MainActivity = ActivityInfo{
				Name:  quoted(line, "name='"),
				Label: quoted(line, "label='"),
				Icon:  quoted(line, "icon='"),
			}
		case strings.HasPrefix(line, "targetSdkVersion:"):
			b.TargetSdkVersion = quoted(line, "targetSdkVersion:'")
		case strings.HasPrefix(line, "sdkVersion:"):
			b.SdkVersion = quoted(line, "sdkVersion:'")
		case strings.HasPrefix(line, "uses-permission:"):
			if name := quoted(line, "name='"); name != "" {
				b.Permissions = append(b.Permissions, name)
			} else if name := quoted(line, "uses-permission:'"); name != "" {
				// Older tool versions quote the permission directly.
				b.Permissions = append(b.Permissions, name)
			}
		case strings.HasPrefix(line, "densities:"):
			b.Densities = parseDensities(line)
		}
	}
	return b
}

// quoted returns the text between marker and the next single quote, or
// empty when the marker is absent.
func quoted(line, marker string) string {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return ""
	}
	rest := line[idx+len(marker):]
	end := strings.Index(rest, "'")
	if end < 0 {
		return rest
	}
	return rest[:end]
}

// parseDensities reads the space/quote-delimited integer list of the
// densities line, dropping non-numeric chunks.
func parseDensities(line string) []int {
	var out []int
	rest := strings.TrimPrefix(line, "densities:")
	for _, chunk := range strings.Fields(rest) {
		chunk = strings.Trim(chunk, "'")
		n, err := strconv.Atoi(chunk)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
