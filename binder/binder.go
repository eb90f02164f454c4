// Package binder implements the literal instantiation strategies of
// spec §4.3: given a rule literal with some variables already bound
// (by earlier literals in the linearized body) and some still free,
// enumerate every ground atom of the target predicate that matches the
// bound positions, binding the free variables one solution at a time.
//
// Grounded on original_source's libgringo/gringo/ground/binders.hh
// (Matcher, PosMatcher, PosBinder, make_binder) and on
// gitrdm-gokando's pkg/minikanren/pldb.go Query/selectFacts (the
// pattern-against-fact scan a Binder degrades to when no index
// applies).
package binder

import (
	"groundcore/config"
	"groundcore/domain"
	"groundcore/logging"
	"groundcore/symbol"
	"groundcore/term"
)

// Binder is a pull-based iterator: Init (re)starts enumeration under
// the current variable bindings, Next advances to (and binds) the next
// solution, returning false once exhausted. Matching a Binder's
// solution may write through VarCells via trail; callers must Undo
// back to the mark recorded at Init when backtracking past this
// literal (spec §4.5's Instantiator coroutine).
type Binder interface {
	// Init captures the binder's starting point for this round of
	// enumeration (e.g. snapshotting which index bucket to scan).
	Init(trail *term.Trail)

	// Next tries the next candidate atom, binding free variables via
	// Term.Match as it goes. Returns false (and leaves no new trail
	// entries) once candidates are exhausted.
	Next(trail *term.Trail) bool

	// Updater returns the refresher of the secondary index this binder
	// reads through, or nil if it reads no secondary index (spec §4.6 step
	// 2: "pull IndexUpdater.update() for every binder touched by a
	// changed domain before the next round").
	Updater() Updater
}

// Updater is implemented by binders that must refresh a secondary
// index before each grounding round (the PosMatcher/PosBinder split of
// binders.hh: only the index-backed IndexedBinder carries one, in every
// mode).
type Updater interface {
	Update()
}

// Mode selects which generation slice a Binder draws candidates from,
// mirroring domain.MatchMode but named for the binder's role in the
// scheduler (spec §4.6: package safety gives a recursive rule one plan
// per recursive literal, with that literal bound to NEW and the other
// recursive literals to OLD, while non-recursive literals draw from
// ALL).
type Mode = domain.MatchMode

const (
	ModeAll = domain.MatchAll
	ModeNew = domain.MatchNew
	ModeOld = domain.MatchOld
)

// warnOperationUndefined reports an arithmetic-undefined evaluation
// (type error, or Div/Mod by zero) at loc via log, tolerating a nil
// log for binders built without one (e.g. directly in tests). Spec §7:
// "Arithmetic undefined ... warning at category operation-undefined;
// the offending match is silently dropped; grounding continues" — this
// is the one required warning before that drop, distinguished from a
// literal simply finding no bound value yet.
func warnOperationUndefined(log *logging.Logger, loc logging.Location, msg string) {
	if log == nil {
		return
	}
	log.Warn(logging.Warning{Category: config.WarnOperationUndefined, Location: loc, Message: msg})
}

// result is the shared element written for a successful match: the
// concrete Symbol found, so callers can read back the ground atom
// (e.g. to record its Atom.UID as a body-literal's supporting fact).
type result struct {
	Sym symbol.Symbol
	UID uint32
	ok  bool
}
