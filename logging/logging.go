// Package logging implements the semantic warning/error Logger of spec
// §7: a category- and count-gated accumulator of Warning values, joined
// with go-multierror so callers can inspect the full set instead of
// only the first, distinguished from the structured text logging of
// SPEC_FULL §10.1 (see internal/obslog for that).
//
// Grounded on hashicorp-nomad's use of go-multierror to aggregate
// node-class/job-validation errors from many independent checks into
// one returned error.
package logging

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"groundcore/config"
)

// Location identifies where in the non-ground source a warning or
// fatal error originated (spec §6: "rules ... with locations").
type Location struct {
	File string
	Line int
	Col  int
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Warning is one accumulated non-fatal diagnostic (spec §7's
// enumerated warning kinds).
type Warning struct {
	Category config.WarningCategory
	Location Location
	Message  string
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %s: %s", w.Location, w.Category, w.Message)
}

// ErrTooManyMessages is the distinguished error raised once a Logger's
// message limit is exhausted (spec §7: "throws a distinguished 'too
// many messages' error that unwinds the grounding of the current
// step").
var ErrTooManyMessages = fmt.Errorf("too many messages")

// Logger accumulates warnings for one grounding step, gated by
// category (spec §10.3 warning gates) and deduplicated per
// (category, Location) pair (SPEC_FULL §14 decision 1 — one message
// per source location, not per evaluation, matching libgringo's
// Logger::lock).
type Logger struct {
	cfg  *config.Config
	seen map[Warning]bool
	warn []Warning
}

// New builds a Logger gated by cfg (nil selects an unlimited,
// ungated default).
func New(cfg *config.Config) *Logger {
	if cfg == nil {
		cfg = config.New()
	}
	return &Logger{cfg: cfg, seen: make(map[Warning]bool)}
}

// Warn records w unless its category is gated off, or it duplicates a
// (category, Location) pair already recorded this step. Returns
// ErrTooManyMessages once the configured message limit is exceeded;
// callers must unwind the current step on that return.
func (l *Logger) Warn(w Warning) error {
	if !l.cfg.WarningEnabled(w.Category) {
		return nil
	}
	key := Warning{Category: w.Category, Location: w.Location}
	if l.seen[key] {
		return nil
	}
	l.seen[key] = true
	l.warn = append(l.warn, w)
	if limit := l.cfg.MessageLimit(); limit > 0 && uint(len(l.warn)) > limit {
		return ErrTooManyMessages
	}
	return nil
}

// Warnings returns every warning recorded so far, in recording order.
func (l *Logger) Warnings() []Warning { return l.warn }

// Err joins every recorded warning into one error via go-multierror,
// or nil if none were recorded.
func (l *Logger) Err() error {
	if len(l.warn) == 0 {
		return nil
	}
	var result *multierror.Error
	for _, w := range l.warn {
		result = multierror.Append(result, w)
	}
	return result.ErrorOrNil()
}

// Reset clears accumulated warnings between grounding steps.
func (l *Logger) Reset() {
	l.seen = make(map[Warning]bool)
	l.warn = nil
}
