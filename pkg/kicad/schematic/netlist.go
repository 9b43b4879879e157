package schematic

// wireGroups merges wires that are electrically joined into groups using a
// union-find data structure. A wire joins another when one of its ends, or
// a junction, lies on the other.
type wireGroups struct {
	parent []int
	rank   []int
}

func newWireGroups(n int) *wireGroups {
	g := &wireGroups{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	// Initially each wire is its own group
	for i := range g.parent {
		g.parent[i] = i
	}
	return g
}

// find returns the representative wire of the group containing i.
// Uses path compression.
func (g *wireGroups) find(i int) int {
	for g.parent[i] != i {
		g.parent[i] = g.parent[g.parent[i]]
		i = g.parent[i]
	}
	return i
}

// union merges the groups of a and b
func (g *wireGroups) union(a, b int) {
	rootA, rootB := g.find(a), g.find(b)
	if rootA == rootB {
		return // Already in the same group
	}

	// Union by rank
	switch {
	case g.rank[rootA] < g.rank[rootB]:
		g.parent[rootA] = rootB
	case g.rank[rootA] > g.rank[rootB]:
		g.parent[rootB] = rootA
	default:
		g.parent[rootB] = rootA
		g.rank[rootA]++
	}
}

// groupWires builds the wire groups of a document
func groupWires(wires []Wire, junctions []Position) *wireGroups {
	g := newWireGroups(len(wires))

	for i := range wires {
		for _, end := range wires[i].ends() {
			for j := range wires {
				if i != j && wires[j].touches(end) {
					g.union(i, j)
				}
			}
		}
	}

	// A junction joins every wire passing through it, even mid-segment
	for _, p := range junctions {
		first := -1
		for i := range wires {
			if !wires[i].touches(p) {
				continue
			}
			if first < 0 {
				first = i
			} else {
				g.union(first, i)
			}
		}
	}
	return g
}
