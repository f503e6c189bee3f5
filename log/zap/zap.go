package zap

import (
	a1c "github.com/terrelln/a1-cbor"
	"go.uber.org/zap"
)

// ZapLogger adapts *zap.Logger to a1c.Logger.
type ZapLogger struct{ L *zap.Logger }

var _ a1c.Logger = ZapLogger{}

func (z ZapLogger) Debug(msg string, f a1c.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f a1c.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f a1c.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f a1c.Fields) { z.L.Error(msg, zf(f)...) }

// zf renders Fields as zap.Field. Byte-count fields (keys ending in
// "Bytes") are rendered through humanize.Bytes for readability, matching
// Error.Error()'s own rendering of allocation-limit failures.
func zf(f a1c.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, a1c.RenderField(k, v)))
	}
	return out
}
