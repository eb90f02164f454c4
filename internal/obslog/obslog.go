// Package obslog wraps a *zap.Logger with the fields every grounding
// component wants attached: run id, SCC id, and phase (SPEC_FULL
// §10.1). It is structured text logging for operators, distinct from
// the semantic logging.Logger warnings a caller inspects
// programmatically.
//
// Grounded on the pack's structured-logging idiom
// (theRebelliousNerd-codenerd/internal/logging wraps zap the same way;
// internal/mangle/engine.go logs via the standard log package but
// reaches for a leveled logger at production scale).
package obslog

import "go.uber.org/zap"

// Logger is a *zap.Logger pre-populated with run-scoped fields.
type Logger struct {
	z *zap.Logger
}

// New wraps z (or zap.NewNop() if z is nil) tagged with runID.
func New(z *zap.Logger, runID string) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{z: z.With(zap.String("run_id", runID))}
}

// Nop returns a Logger that discards everything, for tests.
func Nop() *Logger { return New(nil, "") }

// WithSCC returns a child Logger tagged with the given SCC index.
func (l *Logger) WithSCC(scc int) *Logger {
	return &Logger{z: l.z.With(zap.Int("scc", scc))}
}

// WithPhase returns a child Logger tagged with the given scheduler
// phase name.
func (l *Logger) WithPhase(phase string) *Logger {
	return &Logger{z: l.z.With(zap.String("phase", phase))}
}

// Debug, Info, and Warn forward to the underlying zap.Logger.
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.z.Sync() }
