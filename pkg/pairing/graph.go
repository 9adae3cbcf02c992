package pairing

// =============================================================================
// Allowed-Edge Graph
// =============================================================================

// Allowed is the directed graph of still-permissible assignments: for each
// participant, the set of targets not excluded by Block or Fixed collapsing.
type Allowed map[string]map[string]bool

// BuildAllowed derives the allowed-edge graph from the constraint model.
//
// The graph starts as the complete directed graph minus self-loops, minus all
// Block edges, then collapses around Fixed: a fixed source's edge set becomes
// exactly its fixed target, and a fixed target is removed from every other
// source's edge set (a target with an incoming forced edge cannot also
// receive from anyone else).
func BuildAllowed(names []string, fixed Fixed, block Block) Allowed {
	fixedTargets := make(map[string]bool, len(fixed))
	for _, to := range fixed {
		fixedTargets[to] = true
	}

	g := make(Allowed, len(names))
	for _, from := range names {
		edges := make(map[string]bool)
		if to, ok := fixed[from]; ok {
			edges[to] = true
			g[from] = edges
			continue
		}
		for _, to := range names {
			if to == from || block.Has(from, to) || fixedTargets[to] {
				continue
			}
			edges[to] = true
		}
		g[from] = edges
	}
	return g
}

// Reachable reports whether every participant can be reached from an
// arbitrary start node by following directed allowed edges. This is a
// necessary (not sufficient) precondition for a Hamiltonian cycle: if it
// fails, no single-cycle pairing exists.
//
// A participant with no outgoing edges can never continue a cycle, so any
// empty edge set also fails the check, before the traversal runs.
func (g Allowed) Reachable(names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		if len(g[n]) == 0 {
			return false
		}
	}

	seen := make(map[string]bool, len(names))
	queue := []string{names[0]}
	seen[names[0]] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range g[cur] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen) == len(names)
}
