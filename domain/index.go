package domain

import (
	"fmt"
	"strings"

	"groundcore/symbol"
)

// Index is a secondary hash index on a fixed tuple of argument positions
// of a domain's signature, mapping the projected key (the symbol values
// at those positions) to the uids of matching atoms. One Index instance
// is shared by every Binder that was built from the same indexKey (spec
// §4.2: "add(indexKey, template) → &index: create (or fetch existing)").
type Index struct {
	Positions       []int
	buckets         map[string][]uint32
	imported        int
	pendingDelayed  []uint32
	importedDelayed int
}

func newIndex(positions []int) *Index {
	return &Index{
		Positions: append([]int(nil), positions...),
		buckets:   make(map[string][]uint32),
	}
}

func positionsKey(positions []int) string {
	var b strings.Builder
	for _, p := range positions {
		fmt.Fprintf(&b, "%d,", p)
	}
	return b.String()
}

// keyFor projects sym's arguments at idx.Positions into a lookup key.
func keyFor(store *symbol.Store, sym symbol.Symbol, positions []int) (string, bool) {
	args, ok := store.Args(sym)
	if !ok {
		return "", false
	}
	vals := make([]symbol.Symbol, len(positions))
	for i, p := range positions {
		if p < 0 || p >= len(args) {
			return "", false
		}
		vals[i] = args[p]
	}
	return keyFromSymbols(vals), true
}

// keyFromSymbols builds the same projection key directly from already-
// evaluated argument values, for callers (a binder narrowing a lookup
// by its currently-bound positions) that have the bound values but not
// yet a complete ground Symbol to project from.
func keyFromSymbols(vals []symbol.Symbol) string {
	var b strings.Builder
	for _, v := range vals {
		fmt.Fprintf(&b, "%d|", v.Rep())
	}
	return b.String()
}

// Lookup returns the uids previously indexed under the projection of key.
func (idx *Index) Lookup(key string) []uint32 {
	return idx.buckets[key]
}

func (idx *Index) insert(key string, uid uint32) {
	idx.buckets[key] = append(idx.buckets[key], uid)
}
