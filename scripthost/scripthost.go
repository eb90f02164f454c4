// Package scripthost implements the Script callable interface of spec
// §6/§9: a single abstract `call(location, name, args[]) → iterator of
// Symbols` callback, so the two embeddable runtimes (Lua/Python in the
// original) are interchangeable behind one Go function type. Absence of
// either runtime — the common case for this core, which embeds
// neither — turns every Script literal into a zero-match with a
// warning, per §9's "Script embedding" design note, rather than a
// build-time failure.
//
// Grounded on gitrdm-gokando's pkg/minikanren/slg_wrappers.go, which
// wraps an external evaluator (a SLGEngine goal evaluator) behind a
// narrow functional adapter the core calls without knowing which
// concrete engine is behind it — the same "one function type, many
// possible backends" shape this package gives the script runtime.
package scripthost

import (
	"fmt"

	"groundcore/binder"
	"groundcore/config"
	"groundcore/logging"
	"groundcore/symbol"
)

// Func is one registered callable's concrete implementation: already-
// ground argument symbols in, a finite sequence of result symbols out
// (spec §6: "must either return a finite sequence or signal runtime
// error").
type Func func(store *symbol.Store, args []symbol.Symbol) ([]symbol.Symbol, error)

// Host is a registry of named script callables, implementing
// binder.ScriptCall itself so it can be plugged directly into a
// literal.Script.
type Host struct {
	funcs map[string]Func
	log   *logging.Logger
	loc   logging.Location
}

// New builds an empty Host. log receives an operation-undefined warning
// (spec §7) whenever a call targets an unregistered name or the
// callable itself fails; loc is attached to those warnings since the
// binder layer does not thread call-site locations through
// binder.ScriptCall today.
func New(log *logging.Logger, loc logging.Location) *Host {
	return &Host{funcs: make(map[string]Func), log: log, loc: loc}
}

// Register adds or replaces the callable bound to name.
func (h *Host) Register(name string, fn Func) {
	h.funcs[name] = fn
}

// Call implements binder.ScriptCall. An unregistered name or a callable
// error is reported as a warning and treated as "no match" (an empty
// result slice), per spec §6: "the core treats an empty sequence as
// 'no match'" and §9: "absence ... turns every Script literal into a
// zero-match with a warning."
func (h *Host) Call(store *symbol.Store, name string, args []symbol.Symbol) ([]symbol.Symbol, error) {
	fn, ok := h.funcs[name]
	if !ok {
		h.warn(name, fmt.Sprintf("no script callable registered for %q", name))
		return nil, nil
	}
	results, err := fn(store, args)
	if err != nil {
		h.warn(name, err.Error())
		return nil, nil
	}
	return results, nil
}

func (h *Host) warn(name, message string) {
	if h.log == nil {
		return
	}
	h.log.Warn(logging.Warning{
		Category: config.WarnOperationUndefined,
		Location: h.loc,
		Message:  fmt.Sprintf("script call %q: %s", name, message),
	})
}

var _ binder.ScriptCall = (*Host)(nil).Call
