package logrus

import (
	a1c "github.com/terrelln/a1-cbor"
	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts *logrus.Entry to a1c.Logger.
type LogrusLogger struct{ E *logrus.Entry }

var _ a1c.Logger = LogrusLogger{}

func (l LogrusLogger) Debug(msg string, f a1c.Fields) {
	l.E.WithFields(fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f a1c.Fields) { l.E.WithFields(fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f a1c.Fields) { l.E.WithFields(fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f a1c.Fields) {
	l.E.WithFields(fields(f)).Error(msg)
}

func fields(f a1c.Fields) logrus.Fields {
	if len(f) == 0 {
		return nil
	}
	out := make(logrus.Fields, len(f))
	for k, v := range f {
		out[k] = a1c.RenderField(k, v)
	}
	return out
}
