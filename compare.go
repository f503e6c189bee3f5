package a1c

import "math"

// StrictEqual reports whether a and b are the same tagged variant with
// identical payloads, recursively. Float comparison is bitwise (so ±0
// differ, and distinct NaN bit patterns are never equal) — it never
// crosses uint64/int64 the way Equal does.
func StrictEqual(a, b *Item) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ItemUint64:
		return a.Uint64 == b.Uint64
	case ItemInt64:
		return a.Int64 == b.Int64
	case ItemFloat16:
		return a.Float16 == b.Float16
	case ItemFloat32:
		return math.Float32bits(a.Float32) == math.Float32bits(b.Float32)
	case ItemFloat64:
		return math.Float64bits(a.Float64) == math.Float64bits(b.Float64)
	case ItemBoolean:
		return a.Boolean == b.Boolean
	case ItemNull, ItemUndefined:
		return true
	case ItemSimple:
		return a.Simple == b.Simple
	case ItemBytes:
		return bytesEqual(a.Bytes, b.Bytes)
	case ItemString:
		return bytesEqual(a.String, b.String)
	case ItemArray:
		return arrayEqual(a.Array.Items, b.Array.Items, StrictEqual)
	case ItemMap:
		return arrayEqual(a.Map.Keys, b.Map.Keys, StrictEqual) &&
			arrayEqual(a.Map.Values, b.Map.Values, StrictEqual)
	case ItemTag:
		return a.Tag.Num == b.Tag.Num && StrictEqual(a.Tag.Item, b.Tag.Item)
	case ItemInvalid:
		return false
	default:
		return false
	}
}

// Equal is StrictEqual except that a uint64 item and an int64 item
// compare equal when the int64's value is non-negative and numerically
// matches the uint64 — the decoder normalizes every non-negative decoded
// integer to ItemUint64 regardless of how the wire encoded it, so this
// relation is what round-trip comparisons against hand-built trees (which
// might use either variant for a non-negative value) need.
func Equal(a, b *Item) bool {
	if a.Type == ItemInt64 && b.Type == ItemUint64 {
		return a.Int64 >= 0 && uint64(a.Int64) == b.Uint64
	}
	if a.Type == ItemUint64 && b.Type == ItemInt64 {
		return b.Int64 >= 0 && a.Uint64 == uint64(b.Int64)
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ItemArray:
		return arrayEqual(a.Array.Items, b.Array.Items, Equal)
	case ItemMap:
		return arrayEqual(a.Map.Keys, b.Map.Keys, Equal) &&
			arrayEqual(a.Map.Values, b.Map.Values, Equal)
	case ItemTag:
		return a.Tag.Num == b.Tag.Num && Equal(a.Tag.Item, b.Tag.Item)
	default:
		return StrictEqual(a, b)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func arrayEqual(a, b []Item, eq func(a, b *Item) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(&a[i], &b[i]) {
			return false
		}
	}
	return true
}
