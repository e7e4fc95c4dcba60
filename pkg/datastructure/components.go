package datastructure

// computeComponents. label every node with the id of its connected component, ignoring accessibility.
// two nodes in different components can never be connected under any profile.
func (g *Graph) computeComponents() {
	n := len(g.nodes)
	components := make([]Index, n)
	for i := range components {
		components[i] = INVALID_INDEX
	}

	stack := make([]Index, 0, 64)
	componentId := Index(0)
	for s := Index(0); int(s) < n; s++ {
		if components[s] != INVALID_INDEX {
			continue
		}

		// iterative dfs, recursion depth on long sidewalks can get large
		components[s] = componentId
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for i := g.firstAdj[u]; i < g.firstAdj[u+1]; i++ {
				v := g.adjacency[i].neighbor
				if components[v] == INVALID_INDEX {
					components[v] = componentId
					stack = append(stack, v)
				}
			}
		}
		componentId++
	}

	g.components = components
}

func (g *Graph) GetComponentOf(u Index) Index {
	return g.components[u]
}

func (g *Graph) NumberOfComponents() int {
	max := -1
	for _, c := range g.components {
		if int(c) > max {
			max = int(c)
		}
	}
	return max + 1
}

// SameComponent. false means no path exists between u and v for any rider profile.
func (g *Graph) SameComponent(u, v Index) bool {
	return g.components[u] == g.components[v]
}
