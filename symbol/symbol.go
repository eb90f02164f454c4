// Package symbol implements the flyweight Symbol store: interned strings,
// signatures, and ground symbols with O(1) equality and a total order.
//
// Grounded on gitrdm-gokando's pldb.go fact hashing (the interning
// discipline — never compare raw text twice) and on gringo/value.hh's
// Symbol/Sig representation (the ⊥ < Num < Str < Fun < ⊤ order, and the
// packed (sign, name, arity, args) ordering within Fun).
package symbol

import "fmt"

// Kind is the discriminant of a Symbol. Its numeric order IS the
// cross-kind comparison order from spec §3: Inf < Num < Str < Fun < Sup.
type Kind uint8

const (
	KindInf Kind = iota
	KindNum
	KindStr
	KindFun
	KindSup
)

func (k Kind) String() string {
	switch k {
	case KindInf:
		return "inf"
	case KindNum:
		return "num"
	case KindStr:
		return "str"
	case KindFun:
		return "fun"
	case KindSup:
		return "sup"
	default:
		return "unknown"
	}
}

// StringID is an interned string handle.
type StringID uint32

// FuncID is a handle into the store's hash-consed function-application table.
type FuncID uint32

// Symbol is a flyweight handle: comparable with plain ==, since every
// payload that would otherwise require deep comparison (interned strings,
// function name/args/sign tuples) is itself reduced to a small integer id
// by the Store before a Symbol value is ever constructed. The zero value
// is Inf, the distinguished infimum, which is deliberate: an unset Symbol
// sorts before everything.
type Symbol struct {
	kind Kind
	num  int32
	str  StringID
	fun  FuncID
}

// Type returns the symbol's kind.
func (s Symbol) Type() Kind { return s.kind }

// IsInf reports whether s is the distinguished infimum.
func (s Symbol) IsInf() bool { return s.kind == KindInf }

// IsSup reports whether s is the distinguished supremum.
func (s Symbol) IsSup() bool { return s.kind == KindSup }

// Rep packs a Symbol into a single uint64 that two equal Symbols always
// share and two unequal Symbols (almost certainly) don't — safe to use as
// a cheap map-key or index-key ingredient anywhere plain == isn't
// directly applicable (e.g. building a composite string key).
func (s Symbol) Rep() uint64 { return s.rep() }

// rep packs a Symbol into a single uint64 for hashing and for use as a
// map key component; two Symbols with equal rep are equal (and vice
// versa), because Fun payloads are hash-consed before construction.
func (s Symbol) rep() uint64 {
	switch s.kind {
	case KindNum:
		return uint64(KindNum)<<32 | uint64(uint32(s.num))
	case KindStr:
		return uint64(KindStr)<<32 | uint64(s.str)
	case KindFun:
		return uint64(KindFun)<<32 | uint64(s.fun)
	default:
		return uint64(s.kind) << 32
	}
}

// GoString gives a debugger-friendly, store-free rendering; use
// Store.Format for the human-readable text form, which needs the store to
// resolve interned names.
func (s Symbol) GoString() string {
	return fmt.Sprintf("Symbol{%s:%#x}", s.kind, s.rep())
}
