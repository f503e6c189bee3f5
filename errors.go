package a1c

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrorType is a stable identifier for a codec failure kind. It is never
// used as the sole error value outside this package; callers should
// inspect an *Error for the offset/depth/item context that goes with it.
type ErrorType int

const (
	// ErrOK is never returned; it exists only so the zero ErrorType has a name.
	ErrOK ErrorType = iota
	// ErrBadAlloc: the arena refused a request (including limit exceeded).
	ErrBadAlloc
	// ErrTruncated: input ended before an item finished.
	ErrTruncated
	// ErrInvalidItemHeader: initial byte has an illegal short_count for its major type.
	ErrInvalidItemHeader
	// ErrLargeIntegersUnsupported is reserved: a count exceeded the host's
	// native integer width. On every platform this codec targets, counts
	// are uint64 and this is never produced; kept for API parity with the
	// original implementation's error table.
	ErrLargeIntegersUnsupported
	// ErrIntegerOverflow: arithmetic overflow in a size/count computation.
	ErrIntegerOverflow
	// ErrInvalidChunkedString: a chunk inside an indefinite string had the
	// wrong major type, or was itself indefinite.
	ErrInvalidChunkedString
	// ErrMaxDepthExceeded: the nesting cap was reached.
	ErrMaxDepthExceeded
	// ErrInvalidSimpleEncoding: simple-value form 24+n was used with n < 32.
	ErrInvalidSimpleEncoding
	// ErrBreakNotAllowed: a break byte (0xFF) appeared outside an indefinite-length container.
	ErrBreakNotAllowed
	// ErrWriteFailed: the encoder's write callback returned fewer bytes than requested.
	ErrWriteFailed
	// ErrInvalidItemType: the encoder was asked to encode an ItemInvalid.
	ErrInvalidItemType
	// ErrInvalidSimpleValue: the encoder was asked to emit a simple value in the reserved 20-31 band.
	ErrInvalidSimpleValue
	// ErrTrailingData: bytes remained after the root item (DecodeStrict only).
	ErrTrailingData
)

func (t ErrorType) String() string {
	switch t {
	case ErrOK:
		return "ok"
	case ErrBadAlloc:
		return "badAlloc"
	case ErrTruncated:
		return "truncated"
	case ErrInvalidItemHeader:
		return "invalidItemHeader"
	case ErrLargeIntegersUnsupported:
		return "largeIntegersUnsupported"
	case ErrIntegerOverflow:
		return "integerOverflow"
	case ErrInvalidChunkedString:
		return "invalidChunkedString"
	case ErrMaxDepthExceeded:
		return "maxDepthExceeded"
	case ErrInvalidSimpleEncoding:
		return "invalidSimpleEncoding"
	case ErrBreakNotAllowed:
		return "breakNotAllowed"
	case ErrWriteFailed:
		return "writeFailed"
	case ErrInvalidItemType:
		return "invalidItemType"
	case ErrInvalidSimpleValue:
		return "invalidSimpleValue"
	case ErrTrailingData:
		return "trailingData"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
}

// Error is the structured failure record every decode/encode error carries:
// what kind of failure, where in the stream it happened, how deep the
// decoder/encoder had descended, and which item (if any) was in progress.
// Requested/Limit are only meaningful for ErrBadAlloc.
type Error struct {
	Type  ErrorType
	Pos   int   // decoder: byte offset from input start; encoder: bytes written so far
	Depth int   // current nesting depth when the failure was detected
	Item  *Item // the item being decoded/encoded, if any

	Requested uint64 // ErrBadAlloc only: bytes requested
	Limit     uint64 // ErrBadAlloc only: the limit that was exceeded (0 if unbounded)

	File string // source file of the detecting check
	Line int    // source line of the detecting check
}

func (e *Error) Error() string {
	if e.Type == ErrBadAlloc && e.Limit > 0 {
		return fmt.Sprintf("a1c: %s: requested %s exceeds limit %s (pos=%d depth=%d) at %s:%d",
			e.Type, humanize.Bytes(e.Requested), humanize.Bytes(e.Limit), e.Pos, e.Depth, e.File, e.Line)
	}
	return fmt.Sprintf("a1c: %s: pos=%d depth=%d at %s:%d", e.Type, e.Pos, e.Depth, e.File, e.Line)
}
