package texture

import (
	"sort"

	"github.com/Faultbox/toon-sphere/internal/engine/gpu"
)

// Units maps texture unit numbers to bound textures.
type Units struct {
	bound map[int]gpu.Texture
}

// NewUnits returns an empty mapping.
func NewUnits() *Units {
	return &Units{bound: make(map[int]gpu.Texture)}
}

// Set binds tex to unit, replacing any previous texture. A zero texture
// clears the unit.
func (u *Units) Set(unit int, tex gpu.Texture) {
	if unit < 0 {
		return
	}
	if tex == 0 {
		delete(u.bound, unit)
		return
	}
	u.bound[unit] = tex
}

// Get returns the texture on unit.
func (u *Units) Get(unit int) (gpu.Texture, bool) {
	tex, ok := u.bound[unit]
	return tex, ok
}

// Len returns the number of bound units.
func (u *Units) Len() int {
	return len(u.bound)
}

// Each calls fn for every bound unit in ascending unit order.
func (u *Units) Each(fn func(unit int, tex gpu.Texture)) {
	units := make([]int, 0, len(u.bound))
	for unit := range u.bound {
		units = append(units, unit)
	}
	sort.Ints(units)
	for _, unit := range units {
		fn(unit, u.bound[unit])
	}
}
