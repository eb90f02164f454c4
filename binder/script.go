package binder

import (
	"groundcore/symbol"
	"groundcore/term"
)

// ScriptCall is the narrow surface a scripthost exposes to the binder
// layer: evaluate a named function against already-ground arguments
// and return every result symbol it yields (an embedded script
// function can be non-deterministic, spec §6's Script interface).
type ScriptCall func(store *symbol.Store, name string, args []symbol.Symbol) ([]symbol.Symbol, error)

// ScriptBinder evaluates `@name(args...)` once all of its arguments are
// ground, binding Var to each value the call yields in turn. Grounded
// on original_source's treatment of script calls as just another
// Matcher once bound, generalized here to a result sequence rather
// than clingo's single-value-or-tuple return so a script function can
// act as a generator.
type ScriptBinder struct {
	Store *symbol.Store
	Call  ScriptCall
	Name  string
	Args  []term.Term
	Var   *term.VarRef

	results []symbol.Symbol
	pos     int
	mark    int
	err     error
}

func NewScriptBinder(store *symbol.Store, call ScriptCall, name string, args []term.Term, v *term.VarRef) *ScriptBinder {
	return &ScriptBinder{Store: store, Call: call, Name: name, Args: args, Var: v}
}

// Err returns the most recent script invocation error, if any (spec
// §7: a script error is reported, not silently treated as failure to
// match).
func (b *ScriptBinder) Err() error { return b.err }

func (b *ScriptBinder) Init(trail *term.Trail) {
	b.mark = trail.Mark()
	b.results = nil
	b.pos = 0
	b.err = nil

	argv := make([]symbol.Symbol, len(b.Args))
	for i, a := range b.Args {
		v, ok := a.Eval(b.Store, nil)
		if !ok {
			return
		}
		argv[i] = v
	}
	b.results, b.err = b.Call(b.Store, b.Name, argv)
}

func (b *ScriptBinder) Next(trail *term.Trail) bool {
	for b.pos < len(b.results) {
		val := b.results[b.pos]
		b.pos++
		trail.Undo(b.mark)
		if b.Var.Match(b.Store, val, trail) {
			return true
		}
	}
	return false
}

func (b *ScriptBinder) Updater() Updater { return nil }
