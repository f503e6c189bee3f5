package a1c

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger. Provide an adapter around logging stack.
// If Logger is nil in DecodeOptions/EncodeOptions, logging is disabled.
//
// The codec never changes control flow based on logging: a Decoder or
// Encoder emits a Debug line at the start and end of each Decode/Encode
// call and a Warn line when one fails, purely as a side channel.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// RenderField rewrites byte-count field values (any key ending in "Bytes",
// e.g. "limitBytes", "allocatedBytes") as human-readable sizes before a
// Logger adapter hands them to its backend, so "allocatedBytes": 4096
// prints as "4.1 kB" instead of a raw integer. Every other value passes
// through unchanged.
func RenderField(key string, v any) any {
	if !strings.HasSuffix(key, "Bytes") {
		return v
	}
	switch n := v.(type) {
	case uint64:
		return humanize.Bytes(n)
	case int:
		if n < 0 {
			return v
		}
		return humanize.Bytes(uint64(n))
	case int64:
		if n < 0 {
			return v
		}
		return humanize.Bytes(uint64(n))
	default:
		return v
	}
}
