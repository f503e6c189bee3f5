package a1c

// This file ports the original's A1C_Item_* construction helpers
// (a1cbor.c) to Go. The original API populates an already-allocated
// *A1C_Item out-parameter in place; this is kept as-is (rather than
// returning Item by value) because Parent back-references must stay
// stable once taken — a value-returning constructor would leave a
// child's Parent pointing at a stack copy that the caller's own copy
// never shares.

// itemSize is a nominal per-slot byte cost used only for arena budget
// accounting of item/array/map/tag slot allocations. The arena's real
// backing store is whatever Calloc returns; construction mints the
// actual Go values directly, but still spends the same budget the
// original C allocator would have, so LimitedArena's accounting tracks
// A1C_Item_array/A1C_Item_map/A1C_Item_tag's real allocation sizes
// closely enough for the "cap honored" property (spec.md §8) to hold.
const itemSize = 64

// NewRoot allocates a single zero-valued (ItemInvalid) Item from arena.
// It is the entry point for hand-building an Item tree, mirroring
// A1C_Item_root.
func NewRoot(arena Arena) *Item {
	if arena.allocN(1, itemSize) == nil {
		return nil
	}
	return &Item{}
}

func (item *Item) SetUint64(v uint64) { *item = Item{Type: ItemUint64, Uint64: v} }
func (item *Item) SetInt64(v int64)   { *item = Item{Type: ItemInt64, Int64: v} }
func (item *Item) SetBool(v bool)     { *item = Item{Type: ItemBoolean, Boolean: v} }
func (item *Item) SetNull()           { *item = Item{Type: ItemNull} }
func (item *Item) SetUndefined()      { *item = Item{Type: ItemUndefined} }

// SetFloat16 sets a raw IEEE-754 half-precision bit pattern. The core
// codec never converts this to a native float; use the halffloat package
// if a caller wants that.
func (item *Item) SetFloat16(bits uint16) { *item = Item{Type: ItemFloat16, Float16: bits} }
func (item *Item) SetFloat32(v float32)   { *item = Item{Type: ItemFloat32, Float32: v} }
func (item *Item) SetFloat64(v float64)   { *item = Item{Type: ItemFloat64, Float64: v} }

// SetSimple sets a simple-value code. Values 20-31 are reserved
// (false/true/null/undefined occupy 20-23); the Encoder rejects those
// with ErrInvalidSimpleValue.
func (item *Item) SetSimple(v uint8) { *item = Item{Type: ItemSimple, Simple: v} }

// SetBytesRef sets a bytes item that aliases data directly (no copy).
// The caller must ensure data outlives item.
func (item *Item) SetBytesRef(data []byte) {
	if len(data) == 0 {
		data = emptySentinel
	}
	*item = Item{Type: ItemBytes, Bytes: data}
}

// SetBytesCopy allocates len(data) bytes from arena, copies data into it,
// and sets item to a bytes item over the copy. Reports false on
// allocation failure, leaving item untouched.
func (item *Item) SetBytesCopy(data []byte, arena Arena) bool {
	buf := arena.alloc(uint64(len(data)))
	if buf == nil {
		return false
	}
	copy(buf, data)
	*item = Item{Type: ItemBytes, Bytes: buf}
	return true
}

// SetStringRef sets a text-string item that aliases data directly (no
// copy, no UTF-8 validation). The caller must ensure data outlives item.
func (item *Item) SetStringRef(data []byte) {
	if len(data) == 0 {
		data = emptySentinel
	}
	*item = Item{Type: ItemString, String: data}
}

// SetStringCopy allocates len(data) bytes from arena, copies data into
// it, and sets item to a text-string item over the copy.
func (item *Item) SetStringCopy(data []byte, arena Arena) bool {
	buf := arena.alloc(uint64(len(data)))
	if buf == nil {
		return false
	}
	copy(buf, data)
	*item = Item{Type: ItemString, String: buf}
	return true
}

// SetString is a convenience wrapper over SetStringCopy for Go strings.
func (item *Item) SetString(s string, arena Arena) bool {
	return item.SetStringCopy([]byte(s), arena)
}

// SetTag turns item into a tag item with the given tag number and a
// freshly allocated (ItemInvalid) child, returning a pointer to the
// child for the caller to populate. The child's Parent is set to item.
func (item *Item) SetTag(num uint64, arena Arena) *Item {
	if arena.allocN(1, itemSize) == nil {
		return nil
	}
	child := &Item{}
	*item = Item{Type: ItemTag, Tag: Tag{Num: num, Item: child}}
	child.Parent = item
	return child
}

// SetArray turns item into an array item with size zero-valued
// (ItemInvalid) slots, returning the Array for the caller to populate
// in place. The caller is responsible for setting each slot's Parent to
// item (matching the decoder's own discipline).
func (item *Item) SetArray(size int, arena Arena) *Array {
	items, ok := allocItems(arena, size)
	if !ok {
		return nil
	}
	*item = Item{Type: ItemArray, Array: Array{Items: items}}
	return &item.Array
}

// SetMap turns item into a map item with size zero-valued key/value slot
// pairs, returning the Map for the caller to populate in place. Keys and
// values are allocated as two separate runs of size slots.
func (item *Item) SetMap(size int, arena Arena) *Map {
	keys, ok := allocItems(arena, size)
	if !ok {
		return nil
	}
	values, ok := allocItems(arena, size)
	if !ok {
		return nil
	}
	*item = Item{Type: ItemMap, Map: Map{Keys: keys, Values: values}}
	return &item.Map
}

// allocItems reserves size Item slots against the arena's byte budget
// and returns a freshly zero-valued Go slice to hold them.
func allocItems(arena Arena, size int) ([]Item, bool) {
	if size < 0 {
		return nil, false
	}
	if size == 0 {
		return []Item{}, true
	}
	if arena.allocN(uint64(size), itemSize) == nil {
		return nil, false
	}
	return make([]Item, size), true
}

// The New* functions below are top-level convenience constructors over
// NewRoot + the Set* methods, so building an Item tree by hand (e.g. for
// the round-trip tests spec.md §8 describes) doesn't require threading a
// root slot through every call site. Each returns nil on arena exhaustion.

func NewUint64(v uint64, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetUint64(v)
	return item
}

func NewInt64(v int64, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetInt64(v)
	return item
}

func NewBool(v bool, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetBool(v)
	return item
}

func NewNull(arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetNull()
	return item
}

func NewUndefined(arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetUndefined()
	return item
}

func NewFloat16(bits uint16, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetFloat16(bits)
	return item
}

func NewFloat32(v float32, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetFloat32(v)
	return item
}

func NewFloat64(v float64, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetFloat64(v)
	return item
}

func NewSimple(v uint8, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetSimple(v)
	return item
}

// NewBytesRef constructs a bytes item that aliases data (no copy). The
// caller must ensure data outlives the returned item.
func NewBytesRef(data []byte, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetBytesRef(data)
	return item
}

// NewBytesCopy constructs a bytes item over a copy of data allocated from arena.
func NewBytesCopy(data []byte, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	if !item.SetBytesCopy(data, arena) {
		return nil
	}
	return item
}

// NewStringRef constructs a text-string item that aliases data (no copy,
// no UTF-8 validation). The caller must ensure data outlives the returned item.
func NewStringRef(data []byte, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	item.SetStringRef(data)
	return item
}

// NewStringCopy constructs a text-string item over a copy of data allocated from arena.
func NewStringCopy(data []byte, arena Arena) *Item {
	item := NewRoot(arena)
	if item == nil {
		return nil
	}
	if !item.SetStringCopy(data, arena) {
		return nil
	}
	return item
}

// NewString is a convenience wrapper over NewStringCopy for Go strings.
func NewString(s string, arena Arena) *Item {
	return NewStringCopy([]byte(s), arena)
}

// NewTag constructs a tag item with an (ItemInvalid) child, returning the
// tag item and the child for the caller to populate.
func NewTag(num uint64, arena Arena) (*Item, *Item) {
	item := NewRoot(arena)
	if item == nil {
		return nil, nil
	}
	child := item.SetTag(num, arena)
	if child == nil {
		return nil, nil
	}
	return item, child
}

// NewArray constructs an array item with size zero-valued slots, returning
// the item and its Array for the caller to populate in place.
func NewArray(size int, arena Arena) (*Item, *Array) {
	item := NewRoot(arena)
	if item == nil {
		return nil, nil
	}
	a := item.SetArray(size, arena)
	if a == nil {
		return nil, nil
	}
	return item, a
}

// NewMap constructs a map item with size zero-valued key/value slot
// pairs, returning the item and its Map for the caller to populate in place.
func NewMap(size int, arena Arena) (*Item, *Map) {
	item := NewRoot(arena)
	if item == nil {
		return nil, nil
	}
	m := item.SetMap(size, arena)
	if m == nil {
		return nil, nil
	}
	return item, m
}
