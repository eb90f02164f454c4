package symbol

import "fmt"

// Signature is the (name, arity, positive?) triple from spec §3: two
// Symbols sharing a Signature share a predicate domain. The "positive?"
// flag records classical-negation sign, NOT NAF sign (see literal.NAF for
// that) — `-p(X)` and `p(X)` occupy distinct domains.
type Signature struct {
	Name   StringID
	Arity  uint32
	Sign   bool
}

// FlipSign returns the Signature for the classically-negated predicate.
func (s Signature) FlipSign() Signature {
	return Signature{Name: s.Name, Arity: s.Arity, Sign: !s.Sign}
}

// String renders the signature using a store to resolve the interned name.
func (s Signature) String(store *Store) string {
	prefix := ""
	if s.Sign {
		prefix = "-"
	}
	return fmt.Sprintf("%s%s/%d", prefix, store.MustResolve(s.Name), s.Arity)
}
