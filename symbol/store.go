package symbol

import (
	"fmt"
	"strings"
)

// funcEntry is the hash-consed payload of a Fun symbol: a (possibly
// zero-arity or unnamed) function application. Unnamed (Name == emptyID)
// denotes a tuple per spec §3.
type funcEntry struct {
	Name StringID
	Args []Symbol
	Sign bool
}

// Store is the process-wide flyweight interner. It is populated before
// grounding starts, extended during grounding, and never garbage
// collected within a run (spec §4.1, design note §9: "give it an explicit
// lifetime object passed through; avoid hidden singletons" — callers own
// a *Store and thread it everywhere rather than reaching for a package
// global).
//
// Store is not safe for concurrent use. The scheduling model (spec §5) is
// single-threaded cooperative, so the store needs no locking; the one
// permitted suspension point (a script callable) must not mutate it
// concurrently with the grounder.
type Store struct {
	strings  []string
	strByVal map[string]StringID

	funcs     []funcEntry
	funcIndex map[uint64][]FuncID

	emptyID StringID
}

// NewStore creates an empty, ready-to-use Store.
func NewStore() *Store {
	s := &Store{
		strByVal:  make(map[string]StringID),
		funcIndex: make(map[uint64][]FuncID),
	}
	s.emptyID = s.Intern("")
	return s
}

// Intern returns the StringID for str, creating one if necessary. O(1)
// expected (spec §4.1).
func (s *Store) Intern(str string) StringID {
	if id, ok := s.strByVal[str]; ok {
		return id
	}
	id := StringID(len(s.strings))
	s.strings = append(s.strings, str)
	s.strByVal[str] = id
	return id
}

// MustResolve returns the text for a StringID, panicking if it was never
// interned by this store — an invariant violation (spec §9: helpers may
// panic only for invariant violations, never for user input).
func (s *Store) MustResolve(id StringID) string {
	if int(id) >= len(s.strings) {
		panic(fmt.Sprintf("symbol: StringID %d not interned by this store", id))
	}
	return s.strings[id]
}

// CreateNum creates a Num symbol. O(1).
func (s *Store) CreateNum(i int32) Symbol {
	return Symbol{kind: KindNum, num: i}
}

// CreateStr creates a Str symbol, interning its text. O(len(str)) expected.
func (s *Store) CreateStr(str string) Symbol {
	return Symbol{kind: KindStr, str: s.Intern(str)}
}

// CreateInf creates the distinguished infimum.
func (s *Store) CreateInf() Symbol { return Symbol{kind: KindInf} }

// CreateSup creates the distinguished supremum.
func (s *Store) CreateSup() Symbol { return Symbol{kind: KindSup} }

// CreateID creates a zero-arity function application, i.e. a plain
// identifier symbol such as `foo` or (with sign) `-foo`.
func (s *Store) CreateID(name string, sign bool) Symbol {
	return s.CreateFun(name, nil, sign)
}

// CreateTuple creates an unnamed function application — a tuple — from
// args. O(len(args)) expected.
func (s *Store) CreateTuple(args []Symbol) Symbol {
	return s.internFunc(s.emptyID, args, false)
}

// CreateFun creates (or reuses) a named function application
// `name(args...)`, optionally classically negated. O(len(args)) expected.
func (s *Store) CreateFun(name string, args []Symbol, sign bool) Symbol {
	return s.internFunc(s.Intern(name), args, sign)
}

func (s *Store) internFunc(name StringID, args []Symbol, sign bool) Symbol {
	h := hashFuncKey(name, sign, args)
	for _, cand := range s.funcIndex[h] {
		e := s.funcs[cand]
		if e.Name == name && e.Sign == sign && symbolsEqual(e.Args, args) {
			return Symbol{kind: KindFun, fun: cand}
		}
	}
	id := FuncID(len(s.funcs))
	argsCopy := append([]Symbol(nil), args...)
	s.funcs = append(s.funcs, funcEntry{Name: name, Args: argsCopy, Sign: sign})
	s.funcIndex[h] = append(s.funcIndex[h], id)
	return Symbol{kind: KindFun, fun: id}
}

func symbolsEqual(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hashFuncKey(name StringID, sign bool, args []Symbol) uint64 {
	// FNV-1a over the packed representation; collisions are resolved by
	// the full equality check in internFunc, so this need only be cheap
	// and well distributed, not perfect.
	h := uint64(1469598103934665603)
	mix := func(v uint64) {
		h ^= v
		h *= 1099511628211
	}
	mix(uint64(name))
	if sign {
		mix(1)
	}
	mix(uint64(len(args)))
	for _, a := range args {
		mix(a.rep())
	}
	return h
}

// Num returns the integer payload of a Num symbol.
func (s *Store) Num(sym Symbol) (int32, bool) {
	if sym.kind != KindNum {
		return 0, false
	}
	return sym.num, true
}

// Str returns the text payload of a Str symbol.
func (s *Store) Str(sym Symbol) (string, bool) {
	if sym.kind != KindStr {
		return "", false
	}
	return s.strings[sym.str], true
}

// Name returns the function name of a Fun symbol ("" for a tuple).
func (s *Store) Name(sym Symbol) (string, bool) {
	if sym.kind != KindFun {
		return "", false
	}
	return s.strings[s.funcs[sym.fun].Name], true
}

// Args returns the argument list of a Fun symbol.
func (s *Store) Args(sym Symbol) ([]Symbol, bool) {
	if sym.kind != KindFun {
		return nil, false
	}
	return s.funcs[sym.fun].Args, true
}

// Sign returns the classical-negation sign of a Fun symbol.
func (s *Store) Sign(sym Symbol) (bool, bool) {
	if sym.kind != KindFun {
		return false, false
	}
	return s.funcs[sym.fun].Sign, true
}

// FlipSign returns the symbol with its classical-negation sign toggled.
// Only meaningful for Fun symbols; returns sym unchanged otherwise.
func (s *Store) FlipSign(sym Symbol) Symbol {
	if sym.kind != KindFun {
		return sym
	}
	e := s.funcs[sym.fun]
	return s.internFunc(e.Name, e.Args, !e.Sign)
}

// Signature returns the (name, arity, sign) triple of a Fun symbol that
// has a name (tuples, Name == ""/emptyID, do not have a predicate
// signature and never populate a predicate domain directly).
func (s *Store) Signature(sym Symbol) (Signature, bool) {
	if sym.kind != KindFun {
		return Signature{}, false
	}
	e := s.funcs[sym.fun]
	if e.Name == s.emptyID {
		return Signature{}, false
	}
	return Signature{Name: e.Name, Arity: uint32(len(e.Args)), Sign: e.Sign}, true
}

// Hash returns a stable hash of sym suitable for use in hash tables.
func (s *Store) Hash(sym Symbol) uint64 {
	h := sym.rep()
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}

// Compare implements the total order of spec §3:
// ⊥ < Num < Str < Fun < ⊤; within Num by value; within Str lexically;
// within Fun by (sign, name, arity, args lexicographically).
func (s *Store) Compare(a, b Symbol) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindInf, KindSup:
		return 0
	case KindNum:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	case KindStr:
		return strings.Compare(s.strings[a.str], s.strings[b.str])
	case KindFun:
		ea, eb := s.funcs[a.fun], s.funcs[b.fun]
		if ea.Sign != eb.Sign {
			if !ea.Sign {
				return -1
			}
			return 1
		}
		if c := strings.Compare(s.strings[ea.Name], s.strings[eb.Name]); c != 0 {
			return c
		}
		if len(ea.Args) != len(eb.Args) {
			if len(ea.Args) < len(eb.Args) {
				return -1
			}
			return 1
		}
		for i := range ea.Args {
			if c := s.Compare(ea.Args[i], eb.Args[i]); c != 0 {
				return c
			}
		}
		return 0
	default:
		return 0
	}
}

// Less is a convenience wrapper around Compare for sort/treemap comparators.
func (s *Store) Less(a, b Symbol) bool { return s.Compare(a, b) < 0 }

// Format renders sym as ASP source text, resolving interned names through
// the store. Strings are quoted; negative Fun symbols are prefixed with
// "-"; tuples are rendered as a parenthesized comma list.
func (s *Store) Format(sym Symbol) string {
	switch sym.kind {
	case KindInf:
		return "#inf"
	case KindSup:
		return "#sup"
	case KindNum:
		return fmt.Sprintf("%d", sym.num)
	case KindStr:
		return fmt.Sprintf("%q", s.strings[sym.str])
	case KindFun:
		e := s.funcs[sym.fun]
		var b strings.Builder
		if e.Sign {
			b.WriteByte('-')
		}
		b.WriteString(s.strings[e.Name])
		if len(e.Args) > 0 || e.Name == s.emptyID {
			b.WriteByte('(')
			for i, a := range e.Args {
				if i > 0 {
					b.WriteString(",")
				}
				b.WriteString(s.Format(a))
			}
			b.WriteByte(')')
		}
		return b.String()
	default:
		return "?"
	}
}
