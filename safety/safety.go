// Package safety implements the body linearization algorithm of spec
// §4.4: given a rule's body literals and the variables already bound by
// the enclosing context (the head, or an outer aggregate/conjunction
// element), produce an evaluation order in which every literal's
// variables are bound by the time it runs.
//
// Grounded on original_source's gringo/safety.cc linearization pass
// (build a literal/variable dependency graph, repeatedly pick the
// cheapest satisfiable literal) and on gitrdm-gokando's core.go Solve
// conjunction ordering, which performs the same "run whichever goal can
// make progress now" greedy choice, just without the graph/scoring
// machinery spec §4.4 asks for explicitly.
package safety

import (
	"fmt"
	"sort"
	"strings"

	"groundcore/binder"
	"groundcore/literal"
	"groundcore/term"
)

// Step is one placed literal together with the Binder mode it should
// run under (only meaningful for recursive predicate/ref literals).
type Step struct {
	Literal literal.Literal
	Mode    binder.Mode
}

// Plan is a fully linearized body: literals in the order they must be
// evaluated.
type Plan []Step

// UnsafeError reports that linearization got stuck: some literals could
// never be placed because their variables never became bound.
type UnsafeError struct {
	UnboundVars []string
}

func (e *UnsafeError) Error() string {
	return fmt.Sprintf("unsafe: variable(s) %s never bound", strings.Join(e.UnboundVars, ", "))
}

// ModeSelector picks the Binder mode a given literal should run under
// during this particular linearization pass (spec §4.4's final
// paragraph: a recursive SCC is linearized once per positive recursive
// literal, with that one literal NEW and the rest OLD).
type ModeSelector func(l literal.Literal) binder.Mode

// AllMode is the default selector for a non-recursive (or first-phase)
// linearization: every literal runs with MatchAll semantics.
func AllMode(literal.Literal) binder.Mode { return binder.ModeAll }

// Linearize orders lits into a Plan given the variables already bound
// by the enclosing context (names in initBound). It implements spec
// §4.4 steps 1-4: repeatedly pick, among literals whose Score is not
// Unsafe, the one with the lowest score, commit it, mark the variables
// it binds as bound, and repeat.
func Linearize(lits []literal.Literal, initBound map[string]bool, mode ModeSelector) (Plan, error) {
	if mode == nil {
		mode = AllMode
	}
	bound := make(map[string]bool, len(initBound))
	for k, v := range initBound {
		bound[k] = v
	}

	remaining := append([]literal.Literal(nil), lits...)
	plan := make(Plan, 0, len(lits))

	for len(remaining) > 0 {
		bestIdx := -1
		bestScore := 0
		for i, l := range remaining {
			s := l.Score(bound)
			if s == literal.Unsafe {
				continue
			}
			if bestIdx == -1 || s < bestScore || (s == bestScore && preferRecursiveNew(remaining[bestIdx], l, mode)) {
				bestIdx = i
				bestScore = s
			}
		}
		if bestIdx == -1 {
			return nil, &UnsafeError{UnboundVars: unresolvedVars(remaining, bound)}
		}
		chosen := remaining[bestIdx]
		plan = append(plan, Step{Literal: chosen, Mode: mode(chosen)})
		markBound(chosen, bound)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return plan, nil
}

// preferRecursiveNew breaks a scoring tie in favor of a NEW-mode
// recursive literal (spec §4.4 step 2b: "NEW recursive literals [are
// preferred], to ensure the NEW partition is entered exactly once").
func preferRecursiveNew(current, candidate literal.Literal, mode ModeSelector) bool {
	curNew := current.IsRecursive() && mode(current) == binder.ModeNew
	candNew := candidate.IsRecursive() && mode(candidate) == binder.ModeNew
	return candNew && !curNew
}

// markBound adds every variable chosen binds to bound.
func markBound(l literal.Literal, bound map[string]bool) {
	var occs []term.Occurrence
	l.Collect(&occs)
	for _, o := range occs {
		if o.CanBind {
			bound[o.Cell.Name] = true
		}
	}
}

// unresolvedVars collects, in stable order, every free variable name
// across the literals that never got placed, for the UnsafeError.
func unresolvedVars(remaining []literal.Literal, bound map[string]bool) []string {
	seen := map[string]bool{}
	var names []string
	for _, l := range remaining {
		var occs []term.Occurrence
		l.Collect(&occs)
		for _, o := range occs {
			if bound[o.Cell.Name] || seen[o.Cell.Name] {
				continue
			}
			seen[o.Cell.Name] = true
			names = append(names, o.Cell.Name)
		}
	}
	sort.Strings(names)
	return names
}

// LinearizeRecursive produces one Plan per positive recursive literal
// in lits, rotating which one runs NEW while every other recursive
// literal in the set runs OLD (spec §4.4's SCC rotation: "one plan per
// recursive literal; the recursive literal rotates through"). Every
// non-recursive literal always runs ALL.
func LinearizeRecursive(lits []literal.Literal, initBound map[string]bool) ([]Plan, error) {
	var recursive []literal.Literal
	for _, l := range lits {
		if l.IsRecursive() {
			recursive = append(recursive, l)
		}
	}
	if len(recursive) == 0 {
		plan, err := Linearize(lits, initBound, AllMode)
		if err != nil {
			return nil, err
		}
		return []Plan{plan}, nil
	}

	plans := make([]Plan, 0, len(recursive))
	for _, chosen := range recursive {
		selector := func(l literal.Literal) binder.Mode {
			if l == chosen {
				return binder.ModeNew
			}
			if l.IsRecursive() {
				return binder.ModeOld
			}
			return binder.ModeAll
		}
		plan, err := Linearize(lits, initBound, selector)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
