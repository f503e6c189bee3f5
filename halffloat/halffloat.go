// Package halffloat converts a decoded ItemFloat16's raw bit pattern to
// and from a native float32. The core codec never does this conversion
// itself (spec.md's non-goal: "no half-precision float decoding into a
// native float" — the item type exists purely as a pass-through); this
// package is the opt-in helper a caller reaches for when it wants the
// converted value.
package halffloat

import (
	a1c "github.com/terrelln/a1-cbor"
	"github.com/x448/float16"
)

// ToFloat32 converts item's raw float16 bits to a float32. item must be
// an ItemFloat16; ok is false otherwise.
func ToFloat32(item *a1c.Item) (v float32, ok bool) {
	if item == nil || item.Type != a1c.ItemFloat16 {
		return 0, false
	}
	return float16.Frombits(item.Float16).Float32(), true
}

// NewFloat16FromFloat32 constructs an ItemFloat16 item carrying the
// nearest half-precision encoding of v, allocated from arena.
func NewFloat16FromFloat32(v float32, arena a1c.Arena) *a1c.Item {
	return a1c.NewFloat16(uint16(float16.Fromfloat32(v)), arena)
}
