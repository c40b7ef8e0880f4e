package scene

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterMode selects texture sampling for minification. Magnification only
// accepts the two non-mipmap modes.
type FilterMode int

// Filter modes, in the order the control panel lists them.
const (
	FilterNearest FilterMode = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapNearest
	FilterLinearMipmapLinear
)

var filterNames = [...]string{
	FilterNearest:              "NEAREST",
	FilterLinear:               "LINEAR",
	FilterNearestMipmapNearest: "NEAREST_MIPMAP_NEAREST",
	FilterNearestMipmapLinear:  "NEAREST_MIPMAP_LINEAR",
	FilterLinearMipmapNearest:  "LINEAR_MIPMAP_NEAREST",
	FilterLinearMipmapLinear:   "LINEAR_MIPMAP_LINEAR",
}

// FilterModes returns every mode in panel order.
func FilterModes() []FilterMode {
	return []FilterMode{
		FilterNearest,
		FilterLinear,
		FilterNearestMipmapNearest,
		FilterNearestMipmapLinear,
		FilterLinearMipmapNearest,
		FilterLinearMipmapLinear,
	}
}

// Valid reports whether f is one of the six modes.
func (f FilterMode) Valid() bool {
	return f >= FilterNearest && f <= FilterLinearMipmapLinear
}

// IsMipmap reports whether f samples from mipmap levels.
func (f FilterMode) IsMipmap() bool {
	return f.Valid() && f != FilterNearest && f != FilterLinear
}

// Next returns the following mode, wrapping around.
func (f FilterMode) Next() FilterMode {
	if !f.Valid() {
		return FilterLinear
	}
	return (f + 1) % FilterMode(len(filterNames))
}

func (f FilterMode) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FilterMode(%d)", int(f))
	}
	return filterNames[f]
}

// ParseFilterMode parses a mode name such as "LINEAR_MIPMAP_NEAREST".
// Matching ignores case and accepts '-' for '_'.
func ParseFilterMode(s string) (FilterMode, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for i, n := range filterNames {
		if n == name {
			return FilterMode(i), nil
		}
	}
	return FilterLinear, fmt.Errorf("unknown filter mode %q", s)
}

// MarshalYAML encodes the mode by name.
func (f FilterMode) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// UnmarshalYAML decodes a mode name.
func (f *FilterMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	mode, err := ParseFilterMode(s)
	if err != nil {
		return err
	}
	*f = mode
	return nil
}
