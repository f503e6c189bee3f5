// Package mapindex builds an optional accelerated lookup index over a
// decoded a1c.Map. Map.Get in the core package stays the linear scan the
// original source performs (A1C_Map_get); this package is a caller-invoked
// accelerator for the case a cache library would reach for one — repeated
// lookups against a large decoded map (e.g. a big configuration document).
package mapindex

import (
	a1c "github.com/terrelln/a1-cbor"
	"github.com/cespare/xxhash/v2"
)

// Index is an O(1)-amortized lookup accelerator over one Map's entries,
// keyed by an xxhash digest of each key item's canonical encoding.
// Distinct key items that happen to hash-collide are chained in bucket
// order; Get still compares candidates with a1c.Equal before returning a
// match, so a collision never produces a wrong answer, only a slower one.
type Index struct {
	m       *a1c.Map
	buckets map[uint64][]int // hash -> indices into m.Keys/m.Values
}

// Build computes an Index over m. It returns an error if any key item
// fails to encode (e.g. contains an ItemInvalid), mirroring the encoder's
// own ErrInvalidItemType.
func Build(m *a1c.Map) (*Index, error) {
	idx := &Index{m: m, buckets: make(map[uint64][]int, len(m.Keys))}
	for i := range m.Keys {
		h, err := keyHash(&m.Keys[i])
		if err != nil {
			return nil, err
		}
		idx.buckets[h] = append(idx.buckets[h], i)
	}
	return idx, nil
}

// Get performs an accelerated value-equal lookup, equivalent to
// (*a1c.Map).Get but amortized O(1) instead of linear.
func (idx *Index) Get(key a1c.Item) *a1c.Item {
	if idx == nil {
		return nil
	}
	h, err := keyHash(&key)
	if err != nil {
		return nil
	}
	for _, i := range idx.buckets[h] {
		if a1c.Equal(&idx.m.Keys[i], &key) {
			return &idx.m.Values[i]
		}
	}
	return nil
}

// keyHash hashes key's canonical CBOR encoding. Two value-equal keys (per
// a1c.Equal's uint64/int64 cross-type rule) always encode identically,
// since the encoder normalizes a non-negative int64 to the same bytes a
// uint64 of the same value would produce, so equal keys always land in
// the same bucket.
func keyHash(key *a1c.Item) (uint64, error) {
	size, err := a1c.EncodedSize(key)
	if err != nil {
		return 0, err
	}
	buf := make([]byte, size)
	if _, err := a1c.EncodeInto(key, buf); err != nil {
		return 0, err
	}
	return xxhash.Sum64(buf), nil
}
