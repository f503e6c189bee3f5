// Package a1c implements a CBOR (RFC 8949) codec whose decoded tree lives
// entirely inside a caller-supplied arena.
//
// Components:
//   - Arena / LimitedArena: the calloc-shaped allocator contract every
//     decoded Item is carved out of, with an optional byte budget.
//   - Item: the tagged-union value type (uint64, int64, bytes, string,
//     array, map, tag, boolean, null, undefined, float16/32/64, simple).
//   - Decoder: parses a byte slice into an Item tree, enforcing a depth
//     cap and the arena's allocation budget.
//   - Encoder: walks an Item tree and emits canonical-width CBOR through a
//     caller-supplied write callback.
//
// Decoding:
//
//	dec := a1c.NewDecoder(arena, a1c.DecodeOptions{MaxDepth: 32})
//	item, err := dec.Decode(input)
//
// Encoding:
//
//	n, err := a1c.EncodeInto(item, buf)
package a1c
