// Package domain implements the Predicate Domain of spec §4.2: an
// ordered, append-only table of ground Atoms per Signature, with fact/
// external/defined/delayed flags, a monotone uid, a generation counter,
// and secondary hash indices for variable-binding lookup.
//
// Grounded on gitrdm-gokando's pldb.go (relationData: facts slice +
// per-column factIndex, dedup via a hash set — the shape we generalize
// from copy-on-write snapshots to append-only-with-generations) and on
// gringo/ground/binders.hh's PosMatcher (the imported/importedDelayed
// cursor pair that streams new atoms into an index).
package domain

import "groundcore/symbol"

// ExternalValue is the three-valued (plus "unset"/"release") truth a
// #external atom can carry, per spec §6's Backend.external and
// SPEC_FULL §13 (the original distinguishes these explicitly rather than
// collapsing to a bare bool).
type ExternalValue uint8

const (
	ExternalUnset ExternalValue = iota
	ExternalTrue
	ExternalFalse
	ExternalFree
	ExternalReleased
)

// Atom is one ground record in a PredicateDomain (spec §3).
type Atom struct {
	Sym      symbol.Symbol
	UID      uint32
	Defined  bool
	Fact     bool
	External bool
	ExtValue ExternalValue
	Delayed  bool
	Recursive bool // set by an owning Statement when this atom was derived within its own SCC
}

// MatchMode selects which generation slice of a domain Lookup/iteration
// considers, the NEW/OLD/ALL partition of spec §4.2.
type MatchMode uint8

const (
	MatchAll MatchMode = iota
	MatchNew
	MatchOld
)
