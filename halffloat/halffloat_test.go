package halffloat_test

import (
	"testing"

	a1c "github.com/terrelln/a1-cbor"
	"github.com/terrelln/a1-cbor/halffloat"
)

func TestRoundTripThroughFloat32(t *testing.T) {
	arena := a1c.NewHeapArena()
	item := halffloat.NewFloat16FromFloat32(1.5, arena)
	if item.Type != a1c.ItemFloat16 {
		t.Fatalf("got type %v, want ItemFloat16", item.Type)
	}
	v, ok := halffloat.ToFloat32(item)
	if !ok {
		t.Fatalf("ToFloat32 reported not-ok for a float16 item")
	}
	if v != 1.5 {
		t.Fatalf("got %v, want 1.5 (exactly representable in half precision)", v)
	}
}

func TestToFloat32RejectsWrongType(t *testing.T) {
	arena := a1c.NewHeapArena()
	item := a1c.NewUint64(1, arena)
	if _, ok := halffloat.ToFloat32(item); ok {
		t.Fatalf("ToFloat32 must reject a non-float16 item")
	}
}

func TestDecodedFloat16NeverConvertedAutomatically(t *testing.T) {
	dec := a1c.NewDecoder(a1c.NewHeapArena(), a1c.DecodeOptions{})
	item, err := dec.Decode([]byte{0xf9, 0x3c, 0x00}) // float16 1.0
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if item.Type != a1c.ItemFloat16 || item.Float16 != 0x3c00 {
		t.Fatalf("got %+v, want the raw float16 bit pattern, unconverted", item)
	}
	v, ok := halffloat.ToFloat32(item)
	if !ok || v != 1.0 {
		t.Fatalf("ToFloat32(1.0 bits) = (%v, %v), want (1.0, true)", v, ok)
	}
}
