package a1c

import (
	"encoding/hex"
	"testing"
)

func encodeToBytes(t *testing.T, item *Item) []byte {
	t.Helper()
	size, err := EncodedSize(item)
	if err != nil {
		t.Fatalf("EncodedSize error: %v", err)
	}
	buf := make([]byte, size)
	n, err := EncodeInto(item, buf)
	if err != nil {
		t.Fatalf("EncodeInto error: %v", err)
	}
	if n != size {
		t.Fatalf("EncodeInto wrote %d bytes, EncodedSize said %d", n, size)
	}
	return buf
}

// 1. uint64 0 re-encodes as `00`.
func TestEncodeUint0(t *testing.T) {
	arena := NewHeapArena()
	got := encodeToBytes(t, NewUint64(0, arena))
	if hex.EncodeToString(got) != "00" {
		t.Fatalf("got %x, want 00", got)
	}
}

// 2. uint64 max re-encodes identically to its canonical wire form.
func TestEncodeUintMax64(t *testing.T) {
	arena := NewHeapArena()
	got := encodeToBytes(t, NewUint64(0xFFFFFFFFFFFFFFFF, arena))
	if hex.EncodeToString(got) != "1bffffffffffffffff" {
		t.Fatalf("got %x, want 1bffffffffffffffff", got)
	}
}

func TestEncodeNegativeInt64(t *testing.T) {
	arena := NewHeapArena()
	got := encodeToBytes(t, NewInt64(-1, arena))
	if hex.EncodeToString(got) != "20" {
		t.Fatalf("got %x, want 20", got)
	}
	got = encodeToBytes(t, NewInt64(-100, arena))
	if hex.EncodeToString(got) != "3863" {
		t.Fatalf("got %x, want 3863", got)
	}
}

func TestEncodeNonNegativeInt64UsesMajorZero(t *testing.T) {
	arena := NewHeapArena()
	got := encodeToBytes(t, NewInt64(5, arena))
	if hex.EncodeToString(got) != "05" {
		t.Fatalf("got %x, want 05 (major 0, not major 1)", got)
	}
}

// 5. indefinite-decoded array re-encodes as definite: `83 01 02 03`.
func TestEncodeArrayAlwaysDefinite(t *testing.T) {
	dec := NewDecoder(NewHeapArena(), DecodeOptions{})
	item, err := dec.Decode(mustHex(t, "9f010203ff"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	got := encodeToBytes(t, item)
	if hex.EncodeToString(got) != "83010203" {
		t.Fatalf("got %x, want 83010203", got)
	}
}

func TestEncodeBytesAndString(t *testing.T) {
	arena := NewHeapArena()
	got := encodeToBytes(t, NewBytesRef([]byte("hello"), arena))
	if hex.EncodeToString(got) != "4568656c6c6f" {
		t.Fatalf("got %x, want 4568656c6c6f", got)
	}
	got = encodeToBytes(t, NewString("hello", arena))
	if hex.EncodeToString(got) != "6568656c6c6f" {
		t.Fatalf("got %x, want 6568656c6c6f", got)
	}
}

func TestEncodeTag(t *testing.T) {
	arena := NewHeapArena()
	tag, child := NewTag(1, arena)
	child.SetBool(true)
	got := encodeToBytes(t, tag)
	if hex.EncodeToString(got) != "c1f5" {
		t.Fatalf("got %x, want c1f5", got)
	}
}

func TestEncodeSpecials(t *testing.T) {
	arena := NewHeapArena()
	cases := []struct {
		item *Item
		want string
	}{
		{NewBool(false, arena), "f4"},
		{NewBool(true, arena), "f5"},
		{NewNull(arena), "f6"},
		{NewUndefined(arena), "f7"},
		{NewSimple(0, arena), "e0"},
		{NewSimple(96, arena), "f860"},
		{NewFloat32(1.0, arena), "fa3f800000"},
		{NewFloat64(1.0, arena), "fb3ff0000000000000"},
	}
	for _, tc := range cases {
		got := encodeToBytes(t, tc.item)
		if hex.EncodeToString(got) != tc.want {
			t.Fatalf("encoding %+v: got %x, want %s", tc.item, got, tc.want)
		}
	}
}

func TestEncodeInvalidSimpleValueReserved(t *testing.T) {
	arena := NewHeapArena()
	item := NewSimple(25, arena) // in the 20-31 reserved band
	_, err := EncodedSize(item)
	if err == nil {
		t.Fatalf("expected invalidSimpleValue error")
	}
	aerr, ok := errType(err)
	if !ok || aerr.Type != ErrInvalidSimpleValue {
		t.Fatalf("got %v, want ErrInvalidSimpleValue", err)
	}
}

func TestEncodeInvalidItemType(t *testing.T) {
	item := &Item{} // ItemInvalid, the zero value
	_, err := EncodedSize(item)
	if err == nil {
		t.Fatalf("expected invalidItemType error")
	}
	aerr, ok := errType(err)
	if !ok || aerr.Type != ErrInvalidItemType {
		t.Fatalf("got %v, want ErrInvalidItemType", err)
	}
}

func TestEncodeIntoTooSmallBufferFails(t *testing.T) {
	arena := NewHeapArena()
	item := NewBytesRef([]byte("hello world"), arena)
	buf := make([]byte, 3)
	_, err := EncodeInto(item, buf)
	if err == nil {
		t.Fatalf("expected writeFailed error for a too-small buffer")
	}
	aerr, ok := errType(err)
	if !ok || aerr.Type != ErrWriteFailed {
		t.Fatalf("got %v, want ErrWriteFailed", err)
	}
}

// Canonical width: two calls on equal inputs produce identical byte streams.
func TestEncodeDeterministic(t *testing.T) {
	arena := NewHeapArena()
	item, m := NewMap(2, arena)
	m.Keys[0].SetString2(t, "key", arena)
	m.Values[0].SetString2(t, "value", arena)
	m.Keys[1].SetUint64(42)
	arr := m.Values[1].SetArray(4, arena)
	arr.Items[0].SetInt64(-1)
	arr.Items[1].SetFloat64(3.14)
	arr.Items[2].SetBool(true)
	arr.Items[3].SetNull()

	a := encodeToBytes(t, item)
	b := encodeToBytes(t, item)
	if hex.EncodeToString(a) != hex.EncodeToString(b) {
		t.Fatalf("two encodes of the same tree diverged: %x vs %x", a, b)
	}
}

func TestEncodedSizeMatchesEncodeInto(t *testing.T) {
	arena := NewHeapArena()
	item, arr := NewArray(5, arena)
	for i := range arr.Items {
		arr.Items[i].SetUint64(uint64(i) * 1000)
	}
	size, err := EncodedSize(item)
	if err != nil {
		t.Fatalf("EncodedSize error: %v", err)
	}
	buf := make([]byte, size)
	n, err := EncodeInto(item, buf)
	if err != nil {
		t.Fatalf("EncodeInto error: %v", err)
	}
	if n != size {
		t.Fatalf("EncodeInto wrote %d, EncodedSize said %d", n, size)
	}
}
