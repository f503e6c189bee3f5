// Package header packs and parses the one-byte CBOR initial byte: major
// type in the top 3 bits, short count in the low 5 bits.
//
// Encoding choices mirror the wire-framing discipline of the codec's own
// internal byte formats:
//   - short_count 28/29/30 are always illegal, for every major type.
//   - short_count 31 ("indefinite") is legal only for major types 2, 3,
//     4, 5, and 7 — never for 0 (uint), 1 (negint), or 6 (tag).
//   - 0xFF (major 7, short_count 31) is the universal "break" marker; it
//     is only legal at the position a container decoder is explicitly
//     polling for it, never as a standalone item header.
package header

// MajorType is the top 3 bits of a CBOR initial byte.
type MajorType uint8

const (
	Uint    MajorType = 0
	Int     MajorType = 1
	Bytes   MajorType = 2
	Text    MajorType = 3
	Array   MajorType = 4
	Map     MajorType = 5
	Tag     MajorType = 6
	Special MajorType = 7
)

// Break is the literal byte value of the indefinite-length terminator.
const Break byte = 0xFF

// Header is a parsed CBOR initial byte.
type Header struct {
	byte byte
}

// Make packs a major type and short count into a Header.
func Make(major MajorType, shortCount uint8) Header {
	return Header{byte: (byte(major) << 5) | (shortCount & 0x1F)}
}

// Parse wraps a raw initial byte as a Header.
func Parse(b byte) Header { return Header{byte: b} }

// Byte returns the raw initial byte.
func (h Header) Byte() byte { return h.byte }

// Major returns the major type (top 3 bits).
func (h Header) Major() MajorType { return MajorType(h.byte >> 5) }

// ShortCount returns the short count (low 5 bits).
func (h Header) ShortCount() uint8 { return h.byte & 0x1F }

// IsBreak reports whether this header is the literal break byte 0xFF.
func (h Header) IsBreak() bool { return h.byte == Break }

// IsIndefinite reports whether the short count is the indefinite-length
// marker (31), regardless of major type's legality for it.
func (h Header) IsIndefinite() bool { return h.ShortCount() == 31 }

// IsLegal reports whether (major, shortCount) is a legal combination:
// 28/29/30 are always illegal; 31 is legal only for bytes/text/array/
// map/special (special's 31 is the break marker itself).
func (h Header) IsLegal() bool {
	sc := h.ShortCount()
	if sc < 28 {
		return true
	}
	if sc < 31 {
		return false
	}
	switch h.Major() {
	case Uint, Int, Tag:
		return false
	default:
		return true
	}
}

// CountWidth returns the number of additional bytes (0, 1, 2, 4, or 8)
// that follow the header to encode the count, or -1 if shortCount is the
// indefinite marker (31) and has no following count bytes.
func (h Header) CountWidth() int {
	switch sc := h.ShortCount(); {
	case sc < 24:
		return 0
	case sc == 24:
		return 1
	case sc == 25:
		return 2
	case sc == 26:
		return 4
	case sc == 27:
		return 8
	default: // 31 (indefinite); 28-30 are illegal and never reach here
		return -1
	}
}

// LiteralCount returns shortCount itself as the count, valid only when
// CountWidth() == 0.
func (h Header) LiteralCount() uint64 { return uint64(h.ShortCount()) }

// EncodeCount picks the minimal-width header for major carrying count,
// per the canonical encoding table: the smallest short_count whose range
// holds the value. It returns the Header plus the number of big-endian
// count bytes (0 for shortCount<24) that must follow it.
func EncodeCount(major MajorType, count uint64) (Header, int) {
	switch {
	case count < 24:
		return Make(major, uint8(count)), 0
	case count <= 0xFF:
		return Make(major, 24), 1
	case count <= 0xFFFF:
		return Make(major, 25), 2
	case count <= 0xFFFFFFFF:
		return Make(major, 26), 4
	default:
		return Make(major, 27), 8
	}
}
