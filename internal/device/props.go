package device

import (
	"errors"
	"strings"

	"github.com/FluidXR/questdoctor/internal/adb"
)

// ErrEmptyKey reports a caller passing an empty property key.
var ErrEmptyKey = errors.New("device: empty property key")

// BuildProperties is the parsed build-property facet: an ordered mapping
// from property key to value. Duplicate keys are not expected in a
// property dump, but when they occur the last seen value wins.
type BuildProperties struct {
	keys   []string
	values map[string]string

	Completeness Completeness
}

// Get returns the value for key and whether it was present.
func (p BuildProperties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns all property keys in dump order.
func (p BuildProperties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Values returns all property values in dump order.
func (p BuildProperties) Values() []string {
	out := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		out = append(out, p.values[k])
	}
	return out
}

// Len returns the number of parsed properties.
func (p BuildProperties) Len() int {
	return len(p.keys)
}

// parseBuildProperties converts raw "getprop" output into properties.
// Entries are blank-line-delimited blocks framed as "[key]: [value]".
// Each block is split on the three literal delimiters; exactly two
// resulting tokens are accepted as a key/value pair and anything else is
// dropped, which tolerates trailing or malformed blocks.
func parseBuildProperties(raw string) BuildProperties {
	props := BuildProperties{values: map[string]string{}}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, block := range strings.Split(raw, "\n\n") {
		key, value, ok := splitPropBlock(block)
		if !ok {
			continue
		}
		if _, dup := props.values[key]; !dup {
			props.keys = append(props.keys, key)
		}
		props.values[key] = value
	}
	if len(props.keys) > 0 {
		props.Completeness = Complete
	} else {
		props.Completeness = Partial
	}
	return props
}

// splitPropBlock splits one "[key]: [value]" block on the literal "[",
// "]: [" and "]" delimiters and accepts exactly two tokens.
func splitPropBlock(block string) (key, value string, ok bool) {
	block = strings.TrimSpace(block)
	block = strings.ReplaceAll(block, "]: [", "\x00")
	block = strings.TrimPrefix(block, "[")
	block = strings.TrimSuffix(block, "]")
	tokens := strings.Split(block, "\x00")
	if len(tokens) != 2 {
		return "", "", false
	}
	return tokens[0], tokens[1], true
}

// readProperties fetches and parses the full property dump.
func (d *Device) readProperties() BuildProperties {
	out, err := d.session.Shell(d.serial, "getprop")
	if err != nil {
		d.log.Debug().Err(err).Str("serial", d.serial).Msg("getprop failed")
		return BuildProperties{}
	}
	return parseBuildProperties(out)
}

// SetProperty writes one build property on the device and verifies it by
// re-reading the full property set. The key must already exist locally;
// unknown keys are rejected without any device interaction. Success means
// the post-write value matches the requested value exactly.
func (d *Device) SetProperty(key, value string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	if _, known := d.Properties.Get(key); !known {
		return false, nil
	}
	if d.State != adb.StateOnline || !d.Root.Exists {
		return false, nil
	}
	if _, err := d.session.SuShell(d.serial, "setprop "+key+" "+value); err != nil {
		return false, nil
	}
	d.Properties = d.readProperties()
	got, ok := d.Properties.Get(key)
	return ok && got == value, nil
}
