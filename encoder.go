package a1c

// This file ports A1C_Encoder_encodeOne and its per-major-type helpers
// (a1cbor.c) to Go. The encoder only ever emits definite-length
// containers and minimal-width headers (A1C_Encoder_encodeHeaderAndCount
// picks the smallest short_count whose range holds the count, mirrored
// here by internal/header.EncodeCount) — it never reproduces an
// indefinite-length form, even when the source item was decoded from one.

import (
	"math"
	"runtime"

	"github.com/pkg/errors"

	"github.com/terrelln/a1-cbor/internal/header"
)

// Sink is the encoder's write callback: Write must return the number of
// bytes actually accepted. Fewer bytes than were passed in signals a
// full or failed sink and aborts encoding with ErrWriteFailed, mirroring
// the original's `size_t write(opaque, data, len)` contract (the opaque
// context is simply the closure's captured state in Go).
type Sink struct {
	Write func(data []byte) int
}

// EncodeOptions configures an Encoder.
type EncodeOptions struct {
	// Logger receives Debug/Warn diagnostics; nil disables logging.
	Logger Logger
}

// Encoder walks an Item tree and emits canonical CBOR through a
// caller-supplied Sink. An Encoder is not safe for concurrent use.
type Encoder struct {
	sink   Sink
	logger Logger

	pos   int
	depth int
	top   *Item
}

// NewEncoder creates an Encoder that writes through sink.
func NewEncoder(sink Sink, opts EncodeOptions) *Encoder {
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	return &Encoder{sink: sink, logger: logger}
}

// Pos reports how many bytes the most recent Encode wrote.
func (e *Encoder) Pos() int { return e.pos }

func (e *Encoder) newError(t ErrorType) error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{Type: t, Pos: e.pos, Depth: e.depth, Item: e.top, File: file, Line: line}
}

// write hands data to the sink, failing with ErrWriteFailed on a short
// write (the sink is full or broken).
func (e *Encoder) write(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n := e.sink.Write(data)
	e.pos += n
	if n != len(data) {
		return e.newError(ErrWriteFailed)
	}
	return nil
}

// writeHeaderAndCount emits the minimal-width header for major/count,
// mirroring A1C_Encoder_encodeHeaderAndCount.
func (e *Encoder) writeHeaderAndCount(major header.MajorType, count uint64) error {
	h, width := header.EncodeCount(major, count)
	if err := e.write([]byte{h.Byte()}); err != nil {
		return err
	}
	if width == 0 {
		return nil
	}
	var buf [8]byte
	switch width {
	case 1:
		buf[0] = byte(count)
	case 2:
		buf[0] = byte(count >> 8)
		buf[1] = byte(count)
	case 4:
		buf[0] = byte(count >> 24)
		buf[1] = byte(count >> 16)
		buf[2] = byte(count >> 8)
		buf[3] = byte(count)
	case 8:
		buf[0] = byte(count >> 56)
		buf[1] = byte(count >> 48)
		buf[2] = byte(count >> 40)
		buf[3] = byte(count >> 32)
		buf[4] = byte(count >> 24)
		buf[5] = byte(count >> 16)
		buf[6] = byte(count >> 8)
		buf[7] = byte(count)
	}
	return e.write(buf[:width])
}

// Encode writes item to the Encoder's sink as a single root CBOR value.
func (e *Encoder) Encode(item *Item) error {
	e.pos = 0
	e.depth = 0
	e.top = nil
	e.logger.Debug("encode start", Fields{"type": item.Type.String()})
	if err := e.encodeOne(item); err != nil {
		e.logger.Warn("encode failed", Fields{"error": err.Error(), "pos": e.pos})
		return errors.WithStack(err)
	}
	e.logger.Debug("encode done", Fields{"writtenBytes": uint64(e.pos)})
	return nil
}

func (e *Encoder) encodeOne(item *Item) error {
	e.depth++
	prevTop := e.top
	e.top = item
	defer func() { e.top = prevTop; e.depth-- }()

	switch item.Type {
	case ItemUint64:
		return e.writeHeaderAndCount(header.Uint, item.Uint64)
	case ItemInt64:
		return e.encodeInt(item.Int64)
	case ItemBytes:
		return e.encodeData(header.Bytes, item.Bytes)
	case ItemString:
		return e.encodeData(header.Text, item.String)
	case ItemArray:
		return e.encodeArray(item)
	case ItemMap:
		return e.encodeMap(item)
	case ItemTag:
		return e.encodeTag(item)
	case ItemBoolean, ItemNull, ItemUndefined, ItemFloat16, ItemFloat32, ItemFloat64, ItemSimple:
		return e.encodeSpecial(item)
	default: // ItemInvalid and anything unrecognized
		return e.newError(ErrInvalidItemType)
	}
}

// encodeInt emits major 0 for non-negative int64 values (the wire format
// doesn't distinguish "uint64 holding a small value" from "int64 holding
// a non-negative value") and major 1 otherwise, with count = -1-value,
// i.e. ~uint64(value).
func (e *Encoder) encodeInt(v int64) error {
	if v >= 0 {
		return e.writeHeaderAndCount(header.Uint, uint64(v))
	}
	return e.writeHeaderAndCount(header.Int, ^uint64(v))
}

func (e *Encoder) encodeData(major header.MajorType, data []byte) error {
	if err := e.writeHeaderAndCount(major, uint64(len(data))); err != nil {
		return err
	}
	return e.write(data)
}

func (e *Encoder) encodeArray(item *Item) error {
	items := item.Array.Items
	if err := e.writeHeaderAndCount(header.Array, uint64(len(items))); err != nil {
		return err
	}
	for i := range items {
		if err := e.encodeOne(&items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeMap(item *Item) error {
	keys, values := item.Map.Keys, item.Map.Values
	if err := e.writeHeaderAndCount(header.Map, uint64(len(keys))); err != nil {
		return err
	}
	for i := range keys {
		if err := e.encodeOne(&keys[i]); err != nil {
			return err
		}
		if err := e.encodeOne(&values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeTag(item *Item) error {
	if err := e.writeHeaderAndCount(header.Tag, item.Tag.Num); err != nil {
		return err
	}
	return e.encodeOne(item.Tag.Item)
}

func (e *Encoder) encodeSpecial(item *Item) error {
	switch item.Type {
	case ItemBoolean:
		sc := uint8(20)
		if item.Boolean {
			sc = 21
		}
		return e.write([]byte{header.Make(header.Special, sc).Byte()})
	case ItemNull:
		return e.write([]byte{header.Make(header.Special, 22).Byte()})
	case ItemUndefined:
		return e.write([]byte{header.Make(header.Special, 23).Byte()})
	case ItemSimple:
		return e.encodeSimple(item.Simple)
	case ItemFloat16:
		return e.encodeFloatBits(25, uint64(item.Float16), 2)
	case ItemFloat32:
		return e.encodeFloatBits(26, uint64(math.Float32bits(item.Float32)), 4)
	case ItemFloat64:
		return e.encodeFloatBits(27, math.Float64bits(item.Float64), 8)
	default:
		return e.newError(ErrInvalidItemType)
	}
}

// encodeSimple emits a simple value: the literal short_count for codes
// 0-19, or the 24+byte form for codes >= 32. Codes 20-31 are reserved for
// false/true/null/undefined and are illegal here.
func (e *Encoder) encodeSimple(v uint8) error {
	if v >= 20 && v <= 31 {
		return e.newError(ErrInvalidSimpleValue)
	}
	if v < 20 {
		return e.write([]byte{header.Make(header.Special, v).Byte()})
	}
	return e.write([]byte{header.Make(header.Special, 24).Byte(), v})
}

func (e *Encoder) encodeFloatBits(shortCount uint8, bits uint64, width int) error {
	if err := e.write([]byte{header.Make(header.Special, shortCount).Byte()}); err != nil {
		return err
	}
	var buf [8]byte
	switch width {
	case 2:
		buf[0] = byte(bits >> 8)
		buf[1] = byte(bits)
	case 4:
		buf[0] = byte(bits >> 24)
		buf[1] = byte(bits >> 16)
		buf[2] = byte(bits >> 8)
		buf[3] = byte(bits)
	case 8:
		buf[0] = byte(bits >> 56)
		buf[1] = byte(bits >> 48)
		buf[2] = byte(bits >> 40)
		buf[3] = byte(bits >> 32)
		buf[4] = byte(bits >> 24)
		buf[5] = byte(bits >> 16)
		buf[6] = byte(bits >> 8)
		buf[7] = byte(bits)
	}
	return e.write(buf[:width])
}

// EncodedSize returns the number of bytes Encode(item) would write,
// without materializing them — a no-op counting Sink, mirroring
// A1C_Item_encodedSize's discard-write callback.
func EncodedSize(item *Item) (int, error) {
	size := 0
	sink := Sink{Write: func(data []byte) int {
		size += len(data)
		return len(data)
	}}
	if err := NewEncoder(sink, EncodeOptions{}).Encode(item); err != nil {
		return 0, err
	}
	return size, nil
}

// EncodeInto encodes item into buf, returning the number of bytes
// written. If item's encoding doesn't fit in buf, it returns
// ErrWriteFailed (mirroring A1C_Item_encode's bounded-buffer sink, which
// truncates and reports failure rather than growing the buffer).
func EncodeInto(item *Item, buf []byte) (int, error) {
	written := 0
	sink := Sink{Write: func(data []byte) int {
		avail := len(buf) - written
		n := len(data)
		if n > avail {
			n = avail
		}
		copy(buf[written:written+n], data[:n])
		written += n
		return n
	}}
	if err := NewEncoder(sink, EncodeOptions{}).Encode(item); err != nil {
		return 0, err
	}
	return written, nil
}
