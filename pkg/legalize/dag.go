package legalize

// edge is one directed separation constraint i -> j requiring x_j >= x_i + weight.
type edge struct {
	from, to int
	weight   float64
}

// constraintGraph is a DAG over movable-cell indices on one axis. Built by
// sweep, then pruned by transitiveReduce before becoming LP constraints.
type constraintGraph struct {
	numNodes int
	edges    []edge
}

func newConstraintGraph(n int) *constraintGraph {
	return &constraintGraph{numNodes: n}
}

func (g *constraintGraph) addEdge(from, to int, weight float64) {
	g.edges = append(g.edges, edge{from: from, to: to, weight: weight})
}

// transitiveReduce removes any direct edge (u, v) for which some other
// outgoing edge from u reaches v through at least one intermediate node,
// keeping only the tightest direct requirement where several overlap.
// Adapted from the teacher's reachability-DFS transitive reduction
// (pkg/core/dag/transform.TransitiveReduction), generalized from string
// node IDs to integer indices and from unweighted to weighted edges: a
// redundant edge is dropped only when the indirect path's accumulated
// weight already implies it, so the reduction never loosens a constraint.
func (g *constraintGraph) transitiveReduce() {
	adj := make([][]edge, g.numNodes)
	for _, e := range g.edges {
		adj[e.from] = append(adj[e.from], e)
	}

	// dist[u][v] is the tightest (maximum) separation requirement implied
	// by any path from u to v; reach[u][v] reports whether v is reachable
	// from u at all.
	dist := make([][]float64, g.numNodes)
	reach := make([][]bool, g.numNodes)
	for i := range dist {
		dist[i] = make([]float64, g.numNodes)
		reach[i] = make([]bool, g.numNodes)
	}

	var dfs func(source, current int, acc float64)
	dfs = func(source, current int, acc float64) {
		if reach[source][current] && dist[source][current] >= acc {
			return
		}
		reach[source][current] = true
		if acc > dist[source][current] {
			dist[source][current] = acc
		}
		for _, e := range adj[current] {
			dfs(source, e.to, acc+e.weight)
		}
	}
	for i := 0; i < g.numNodes; i++ {
		dfs(i, i, 0)
	}

	var kept []edge
	for _, e := range g.edges {
		redundant := false
		for _, mid := range adj[e.from] {
			if mid.to == e.to {
				continue
			}
			if reach[mid.to][e.to] && mid.weight+dist[mid.to][e.to] >= e.weight-1e-9 {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, e)
		}
	}
	g.edges = kept
}
