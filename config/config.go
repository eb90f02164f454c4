// Package config models the already-parsed configuration the core
// consumes (spec §6's enumerated configuration list): which behavior
// knobs the grounder exposes to its embedder. It does not parse flags
// or files — that is the embedding application's job (spec §1 scope).
//
// Grounded on gitrdm-gokando's pkg/minikanren/optimize.go OptimizeOption
// pattern: a functional-options constructor over an unexported config
// struct, so new knobs can be added without breaking callers.
package config

// DebugMode selects how much of the grounding process is tee'd to
// stderr (spec §6: "verbose debug mode: {off, text, translate, all}").
type DebugMode uint8

const (
	DebugOff DebugMode = iota
	DebugText
	DebugTranslate
	DebugAll
)

// WarningCategory names one of the gated warning classes of spec §7.
type WarningCategory string

const (
	WarnOperationUndefined WarningCategory = "operation-undefined"
	WarnRuntimeError       WarningCategory = "runtime-error"
	WarnAtomUndefined      WarningCategory = "atom-undefined"
	WarnFileIncluded       WarningCategory = "file-included"
	WarnVariableUnbounded  WarningCategory = "variable-unbounded"
	WarnGlobalVariable     WarningCategory = "global-variable"
	WarnOther              WarningCategory = "other"
)

// Config is the full set of grounding-behavior knobs (spec §6).
type Config struct {
	preserveFacts bool
	reifySCCs     bool
	reifySteps    bool
	debugMode     DebugMode
	messageLimit  uint
	warningGates  map[WarningCategory]bool
}

// PreserveFacts reports whether body literals proven fact should still
// be written to the backend (useful for reification debugging).
func (c *Config) PreserveFacts() bool { return c.preserveFacts }

// ReifySCCs reports whether SCC boundaries should be reified in output
// backends that support it.
func (c *Config) ReifySCCs() bool { return c.reifySCCs }

// ReifySteps reports whether incremental-grounding step boundaries
// should be reified in output backends that support it.
func (c *Config) ReifySteps() bool { return c.reifySteps }

// DebugMode returns the configured verbosity of the tee'd debug sink.
func (c *Config) DebugMode() DebugMode { return c.debugMode }

// MessageLimit returns the bounded count of accumulated warnings past
// which the logger raises the "too many messages" error (0 means
// unlimited).
func (c *Config) MessageLimit() uint { return c.messageLimit }

// WarningEnabled reports whether category is gated on (the default,
// absent an explicit Option, is enabled for every category).
func (c *Config) WarningEnabled(category WarningCategory) bool {
	if c.warningGates == nil {
		return true
	}
	enabled, set := c.warningGates[category]
	if !set {
		return true
	}
	return enabled
}

// Option configures a Config built by New.
type Option func(*Config)

// WithPreserveFacts sets the preserveFacts knob.
func WithPreserveFacts(v bool) Option {
	return func(c *Config) { c.preserveFacts = v }
}

// WithReifySCCs sets the reifySCCs knob.
func WithReifySCCs(v bool) Option {
	return func(c *Config) { c.reifySCCs = v }
}

// WithReifySteps sets the reifySteps knob.
func WithReifySteps(v bool) Option {
	return func(c *Config) { c.reifySteps = v }
}

// WithDebugMode sets the verbose debug mode.
func WithDebugMode(m DebugMode) Option {
	return func(c *Config) { c.debugMode = m }
}

// WithMessageLimit sets the bounded warning count.
func WithMessageLimit(n uint) Option {
	return func(c *Config) { c.messageLimit = n }
}

// WithWarningGate enables or disables one warning category.
func WithWarningGate(category WarningCategory, enabled bool) Option {
	return func(c *Config) {
		if c.warningGates == nil {
			c.warningGates = make(map[WarningCategory]bool)
		}
		c.warningGates[category] = enabled
	}
}

// New builds a Config from opts, defaulting every knob off/unlimited
// and every warning category enabled.
func New(opts ...Option) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
