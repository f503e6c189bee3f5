package a1c

// This file ports A1C_Decoder_decodeOneInto and its per-major-type helpers
// (a1cbor.c) to Go. Where the original's reference C diverges from RFC 8949
// for negative integers (it literally negates the count instead of using
// -1-n; see a1cbor.c's A1C_Decoder_decodeInt / A1C_Encoder_encodeInt), this
// port follows the corrected, standards-compliant -1-n semantics instead —
// that divergence is intentional, not an oversight.
//
// Depth accounting tracks nesting: the counter is incremented on entry to
// every decoded item and decremented when that item is finished, so a
// straight chain of N nested tags uses N levels while a flat array of N
// items uses only two.

import (
	"encoding/binary"
	"math"
	"runtime"

	"github.com/pkg/errors"

	"github.com/terrelln/a1-cbor/internal/header"
)

// DefaultMaxDepth is the nesting cap used when DecodeOptions.MaxDepth is 0.
const DefaultMaxDepth = 32

// selfDescribeTag is CBOR tag 55799, unwrapped as a no-op on decode.
const selfDescribeTag = 55799

// DecodeOptions configures a Decoder, mirroring A1C_DecodeOptions.
type DecodeOptions struct {
	// MaxDepth caps nesting depth; 0 means DefaultMaxDepth.
	MaxDepth int
	// LimitBytes caps total arena allocation across one Decode call; 0 means unbounded.
	LimitBytes uint64
	// ReferenceSource lets decoded bytes/string items alias the input slice
	// instead of being copied into the arena. The caller must then keep the
	// input alive for as long as the returned item tree is used.
	ReferenceSource bool
	// Logger receives Debug/Warn diagnostics; nil disables logging.
	Logger Logger
}

// Decoder decodes CBOR-encoded bytes into an Item tree. A Decoder is not
// safe for concurrent use; create one per goroutine (each with its own
// arena) for parallel decoding.
type Decoder struct {
	limited         *LimitedArena
	arena           Arena
	maxDepth        int
	referenceSource bool
	logger          Logger

	input []byte
	pos   int
	depth int
	top   *Item
}

// NewDecoder creates a Decoder drawing from arena, applying opts.
func NewDecoder(arena Arena, opts DecodeOptions) *Decoder {
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	limited := NewLimitedArena(arena, opts.LimitBytes)
	return &Decoder{
		limited:         limited,
		arena:           limited.Arena(),
		maxDepth:        coalesce(opts.MaxDepth, DefaultMaxDepth),
		referenceSource: opts.ReferenceSource,
		logger:          logger,
	}
}

// LimitedArena exposes the decoder's allocation accounting, e.g. so a
// caller can log AllocatedBytes() after a failed decode.
func (d *Decoder) LimitedArena() *LimitedArena { return d.limited }

// Decode parses a single root item from data. Trailing bytes after the
// root are ignored; use DecodeStrict to reject them.
func (d *Decoder) Decode(data []byte) (*Item, error) {
	d.limited.Reset()
	d.input = data
	d.pos = 0
	d.depth = 0
	d.top = nil

	d.logger.Debug("decode start", Fields{"inputBytes": uint64(len(data)), "maxDepth": d.maxDepth})

	item, err := d.decodeOne(nil)
	if err != nil {
		d.logger.Warn("decode failed", Fields{"error": err.Error(), "pos": d.pos})
		return nil, errors.WithStack(err)
	}
	d.logger.Debug("decode done", Fields{"pos": d.pos, "allocatedBytes": d.limited.AllocatedBytes()})
	return item, nil
}

// DecodeStrict is Decode plus a check that the entire input was consumed.
func (d *Decoder) DecodeStrict(data []byte) (*Item, error) {
	item, err := d.Decode(data)
	if err != nil {
		return nil, err
	}
	if d.pos != len(data) {
		return nil, d.newError(ErrTrailingData)
	}
	return item, nil
}

// Pos reports how many bytes of the most recent Decode's input were consumed.
func (d *Decoder) Pos() int { return d.pos }

func (d *Decoder) newError(t ErrorType) error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{Type: t, Pos: d.pos, Depth: d.depth, Item: d.top, File: file, Line: line}
}

func (d *Decoder) newAllocError(requested uint64) error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{
		Type: ErrBadAlloc, Pos: d.pos, Depth: d.depth, Item: d.top,
		Requested: requested, Limit: d.limited.LimitBytes(),
		File: file, Line: line,
	}
}

func (d *Decoder) peek(n int) ([]byte, bool) {
	if len(d.input)-d.pos < n {
		return nil, false
	}
	return d.input[d.pos : d.pos+n], true
}

func (d *Decoder) read(n int) ([]byte, bool) {
	b, ok := d.peek(n)
	if !ok {
		return nil, false
	}
	d.pos += n
	return b, true
}

func (d *Decoder) readUint(n int) (uint64, bool) {
	b, ok := d.read(n)
	if !ok {
		return 0, false
	}
	switch n {
	case 1:
		return uint64(b[0]), true
	case 2:
		return uint64(binary.BigEndian.Uint16(b)), true
	case 4:
		return uint64(binary.BigEndian.Uint32(b)), true
	case 8:
		return binary.BigEndian.Uint64(b), true
	}
	panic("a1c: invalid readUint width")
}

// readCount reads the count that follows h's initial byte per the
// short-count table. indefinite reports whether h's short_count is 31.
func (d *Decoder) readCount(h header.Header) (count uint64, indefinite bool, err error) {
	w := h.CountWidth()
	if w < 0 {
		return 0, true, nil
	}
	if w == 0 {
		return h.LiteralCount(), false, nil
	}
	v, ok := d.readUint(w)
	if !ok {
		return 0, false, d.newError(ErrTruncated)
	}
	return v, false, nil
}

// decodeOne allocates a fresh Item charged against the arena and decodes
// one value into it, mirroring A1C_Decoder_decodeOne's per-call calloc.
func (d *Decoder) decodeOne(parent *Item) (*Item, error) {
	if d.arena.allocN(1, itemSize) == nil {
		return nil, d.newAllocError(itemSize)
	}
	item := &Item{Parent: parent}
	if err := d.decodeInto(item); err != nil {
		return nil, err
	}
	return item, nil
}

// decodeInto decodes one value's header and body into an already-allocated
// item slot, mirroring A1C_Decoder_decodeOneInto.
func (d *Decoder) decodeInto(item *Item) error {
	d.depth++
	defer func() { d.depth-- }()
	if d.depth > d.maxDepth {
		return d.newError(ErrMaxDepthExceeded)
	}
	prevTop := d.top
	d.top = item
	defer func() { d.top = prevTop }()

	b, ok := d.read(1)
	if !ok {
		return d.newError(ErrTruncated)
	}
	h := header.Parse(b[0])
	if !h.IsLegal() {
		return d.newError(ErrInvalidItemHeader)
	}

	switch h.Major() {
	case header.Uint:
		return d.decodeUint(h, item)
	case header.Int:
		return d.decodeInt(h, item)
	case header.Bytes:
		return d.decodeString(h, item, ItemBytes)
	case header.Text:
		return d.decodeString(h, item, ItemString)
	case header.Array:
		return d.decodeArray(h, item)
	case header.Map:
		return d.decodeMap(h, item)
	case header.Tag:
		return d.decodeTag(h, item)
	default: // header.Special
		return d.decodeSpecial(h, item)
	}
}

func (d *Decoder) decodeUint(h header.Header, item *Item) error {
	count, _, err := d.readCount(h)
	if err != nil {
		return err
	}
	item.Type = ItemUint64
	item.Uint64 = count
	return nil
}

func (d *Decoder) decodeInt(h header.Header, item *Item) error {
	n, _, err := d.readCount(h)
	if err != nil {
		return err
	}
	if n >= (uint64(1) << 63) {
		return d.newError(ErrIntegerOverflow)
	}
	item.Type = ItemInt64
	item.Int64 = -1 - int64(n)
	return nil
}

// decodeString handles both bytes (major 2) and text (major 3): definite
// chunks are read directly; indefinite chunks of the same major type are
// linked through a transient chunkLink chain (newest first) until the
// break byte is seen, then copied into one final buffer in original order.
func (d *Decoder) decodeString(h header.Header, item *Item, kind ItemType) error {
	count, indefinite, err := d.readCount(h)
	if err != nil {
		return err
	}
	if !indefinite {
		data, err := d.readPayload(count)
		if err != nil {
			return err
		}
		item.Type = kind
		if kind == ItemBytes {
			item.Bytes = data
		} else {
			item.String = data
		}
		return nil
	}
	return d.decodeChunkedString(item, kind)
}

func (d *Decoder) readPayload(count uint64) ([]byte, error) {
	raw, ok := d.read(int(count))
	if !ok {
		return nil, d.newError(ErrTruncated)
	}
	if d.referenceSource {
		if len(raw) == 0 {
			return emptySentinel, nil
		}
		return raw, nil
	}
	buf := d.arena.alloc(count)
	if buf == nil {
		return nil, d.newAllocError(count)
	}
	copy(buf, raw)
	return buf, nil
}

// chunkLink is one definite-length chunk of an indefinite byte/text string,
// threaded back-to-front via next (the previous chunk in stream order).
type chunkLink struct {
	data []byte
	next *chunkLink
}

func (d *Decoder) decodeChunkedString(item *Item, kind ItemType) error {
	var head *chunkLink
	var total uint64
	for {
		b, ok := d.peek(1)
		if !ok {
			return d.newError(ErrTruncated)
		}
		if b[0] == header.Break {
			d.pos++
			break
		}
		ch := header.Parse(b[0])
		if !ch.IsLegal() {
			return d.newError(ErrInvalidItemHeader)
		}
		if ch.Major() != majorOf(kind) || ch.IsIndefinite() {
			return d.newError(ErrInvalidChunkedString)
		}
		d.pos++
		count, _, err := d.readCount(ch)
		if err != nil {
			return err
		}
		data, err := d.readPayload(count)
		if err != nil {
			return err
		}
		newTotal, overflow := addOverflow(total, uint64(len(data)))
		if overflow {
			return d.newError(ErrIntegerOverflow)
		}
		total = newTotal
		head = &chunkLink{data: data, next: head}
	}

	buf := d.arena.alloc(total)
	if buf == nil {
		return d.newAllocError(total)
	}
	// head is the last chunk seen; walk back-to-front, filling from the end.
	end := len(buf)
	for c := head; c != nil; c = c.next {
		start := end - len(c.data)
		copy(buf[start:end], c.data)
		end = start
	}

	item.Type = kind
	if kind == ItemBytes {
		item.Bytes = buf
	} else {
		item.String = buf
	}
	return nil
}

func majorOf(kind ItemType) header.MajorType {
	if kind == ItemBytes {
		return header.Bytes
	}
	return header.Text
}

func (d *Decoder) decodeArray(h header.Header, item *Item) error {
	count, indefinite, err := d.readCount(h)
	if err != nil {
		return err
	}
	if !indefinite {
		items, ok := allocItems(d.arena, int(count))
		if !ok {
			return d.newAllocError(count * itemSize)
		}
		item.Type = ItemArray
		item.Array = Array{Items: items}
		for i := range items {
			items[i].Parent = item
			if err := d.decodeInto(&items[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return d.decodeIndefiniteArray(item)
}

// itemLink threads one decoded array element of an indefinite array through
// a temporary singly-linked chain, exactly like chunkLink does for strings.
type itemLink struct {
	item *Item
	next *itemLink
}

func (d *Decoder) decodeIndefiniteArray(item *Item) error {
	var head *itemLink
	n := 0
	for {
		b, ok := d.peek(1)
		if !ok {
			return d.newError(ErrTruncated)
		}
		if b[0] == header.Break {
			d.pos++
			break
		}
		child, err := d.decodeOne(item)
		if err != nil {
			return err
		}
		head = &itemLink{item: child, next: head}
		n++
	}

	items, ok := allocItems(d.arena, n)
	if !ok {
		return d.newAllocError(uint64(n) * itemSize)
	}
	i := n
	for c := head; c != nil; c = c.next {
		i--
		items[i] = *c.item
		items[i].Parent = item
		reparentChildren(&items[i])
	}
	item.Type = ItemArray
	item.Array = Array{Items: items}
	return nil
}

func (d *Decoder) decodeMap(h header.Header, item *Item) error {
	count, indefinite, err := d.readCount(h)
	if err != nil {
		return err
	}
	if !indefinite {
		keys, ok := allocItems(d.arena, int(count))
		if !ok {
			return d.newAllocError(count * itemSize)
		}
		values, ok := allocItems(d.arena, int(count))
		if !ok {
			return d.newAllocError(count * itemSize)
		}
		item.Type = ItemMap
		item.Map = Map{Keys: keys, Values: values}
		for i := range keys {
			keys[i].Parent = item
			if err := d.decodeInto(&keys[i]); err != nil {
				return err
			}
			values[i].Parent = item
			if err := d.decodeInto(&values[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return d.decodeIndefiniteMap(item)
}

func (d *Decoder) decodeIndefiniteMap(item *Item) error {
	var keyHead, valueHead *itemLink
	n := 0
	for {
		b, ok := d.peek(1)
		if !ok {
			return d.newError(ErrTruncated)
		}
		if b[0] == header.Break {
			d.pos++
			break
		}
		key, err := d.decodeOne(item)
		if err != nil {
			return err
		}
		value, err := d.decodeOne(item)
		if err != nil {
			return err
		}
		keyHead = &itemLink{item: key, next: keyHead}
		valueHead = &itemLink{item: value, next: valueHead}
		n++
	}

	keys, ok := allocItems(d.arena, n)
	if !ok {
		return d.newAllocError(uint64(n) * itemSize)
	}
	values, ok := allocItems(d.arena, n)
	if !ok {
		return d.newAllocError(uint64(n) * itemSize)
	}
	i := n
	for c := keyHead; c != nil; c = c.next {
		i--
		keys[i] = *c.item
		keys[i].Parent = item
		reparentChildren(&keys[i])
	}
	i = n
	for c := valueHead; c != nil; c = c.next {
		i--
		values[i] = *c.item
		values[i].Parent = item
		reparentChildren(&values[i])
	}
	item.Type = ItemMap
	item.Map = Map{Keys: keys, Values: values}
	return nil
}

func (d *Decoder) decodeTag(h header.Header, item *Item) error {
	num, _, err := d.readCount(h)
	if err != nil {
		return err
	}
	child, err := d.decodeOne(item)
	if err != nil {
		return err
	}
	if num == selfDescribeTag {
		parent := item.Parent
		*item = *child
		item.Parent = parent
		reparentChildren(item)
		return nil
	}
	item.Type = ItemTag
	item.Tag = Tag{Num: num, Item: child}
	return nil
}

// reparentChildren fixes up direct children's Parent pointers after item's
// contents were copied in from another Item value (a self-describe tag
// unwrap's *item = *child, or an indefinite container moving a chained
// element into its final slot): any child whose Parent pointed at the
// discarded source value must be repointed at item.
func reparentChildren(item *Item) {
	switch item.Type {
	case ItemArray:
		for i := range item.Array.Items {
			item.Array.Items[i].Parent = item
		}
	case ItemMap:
		for i := range item.Map.Keys {
			item.Map.Keys[i].Parent = item
			item.Map.Values[i].Parent = item
		}
	case ItemTag:
		item.Tag.Item.Parent = item
	}
}

func (d *Decoder) decodeSpecial(h header.Header, item *Item) error {
	sc := h.ShortCount()
	switch {
	case sc < 20:
		item.Type = ItemSimple
		item.Simple = sc
		return nil
	case sc == 20:
		item.Type = ItemBoolean
		item.Boolean = false
		return nil
	case sc == 21:
		item.Type = ItemBoolean
		item.Boolean = true
		return nil
	case sc == 22:
		item.Type = ItemNull
		return nil
	case sc == 23:
		item.Type = ItemUndefined
		return nil
	case sc == 24:
		b, ok := d.read(1)
		if !ok {
			return d.newError(ErrTruncated)
		}
		if b[0] < 32 {
			return d.newError(ErrInvalidSimpleEncoding)
		}
		item.Type = ItemSimple
		item.Simple = b[0]
		return nil
	case sc == 25:
		v, ok := d.readUint(2)
		if !ok {
			return d.newError(ErrTruncated)
		}
		item.Type = ItemFloat16
		item.Float16 = uint16(v)
		return nil
	case sc == 26:
		v, ok := d.readUint(4)
		if !ok {
			return d.newError(ErrTruncated)
		}
		item.Type = ItemFloat32
		item.Float32 = math.Float32frombits(uint32(v))
		return nil
	case sc == 27:
		v, ok := d.readUint(8)
		if !ok {
			return d.newError(ErrTruncated)
		}
		item.Type = ItemFloat64
		item.Float64 = math.Float64frombits(v)
		return nil
	default: // 31 at item position: a lone break byte, never legal here
		return d.newError(ErrBreakNotAllowed)
	}
}
