package grounder

import "groundcore/domain"

// depEdge is one (dependent, dependency) pair in the domain dependency
// graph built from a Step's rules: dependent's head is only fully
// grounded once dependency has been (spec §9: "model as a graph with
// dependency-analysis-produced SCCs").
type depEdge struct {
	from *domain.PredicateDomain // a rule's head domain
	to   *domain.PredicateDomain // a domain one of that rule's body literals targets
}

// tarjan computes the strongly connected components of the domain
// graph described by edges, over every domain reachable from nodes.
// Returns one []*domain.PredicateDomain per SCC, in the order Tarjan's
// algorithm completes them (see orderSCCs for why that order is already
// dependencies-first).
//
// Grounded on original_source's dependency-analysis pass (gringo groups
// non-ground rules into SCCs before grounding each one to a fixpoint);
// implemented here as the textbook recursive Tarjan algorithm since no
// example repo in the corpus carries a ready-made SCC routine.
func tarjan(nodes []*domain.PredicateDomain, edges []depEdge) [][]*domain.PredicateDomain {
	adj := make(map[*domain.PredicateDomain][]*domain.PredicateDomain)
	for _, n := range nodes {
		if _, ok := adj[n]; !ok {
			adj[n] = nil
		}
	}
	for _, e := range edges {
		adj[e.from] = append(adj[e.from], e.to)
	}

	index := make(map[*domain.PredicateDomain]int)
	lowlink := make(map[*domain.PredicateDomain]int)
	onStack := make(map[*domain.PredicateDomain]bool)
	var stack []*domain.PredicateDomain
	var sccs [][]*domain.PredicateDomain
	next := 0

	var strongconnect func(v *domain.PredicateDomain)
	strongconnect = func(v *domain.PredicateDomain) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if _, seen := index[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
		}

		if lowlink[v] == index[v] {
			var scc []*domain.PredicateDomain
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, n := range nodes {
		if _, seen := index[n]; !seen {
			strongconnect(n)
		}
	}
	return sccs
}

// orderSCCs returns sccs (as produced by tarjan) ordered so that every
// SCC appears only after every other SCC it depends on via edges (spec
// §9: "ground one SCC at a time" in dependency order). Edges run from a
// rule's head domain to its body domains, and Tarjan's recursive
// formulation completes an SCC only after every SCC reachable from it,
// i.e. after its dependencies; tarjan's output is therefore already in
// the dependencies-first order the scheduler needs, and this function
// returns a copy of it in that same order.
func orderSCCs(sccs [][]*domain.PredicateDomain) [][]*domain.PredicateDomain {
	ordered := make([][]*domain.PredicateDomain, len(sccs))
	copy(ordered, sccs)
	return ordered
}
