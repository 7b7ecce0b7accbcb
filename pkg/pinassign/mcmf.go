package pinassign

import "math"

const mcmfInf = math.MaxFloat64 / 2

type mcmfEdge struct {
	to, cap, flow int
	cost          float64
}

// mcmf is a minimum-cost maximum-flow network used for the fast-path
// bipartite assignments in Section 4.5 step 4: unit-capacity arcs from a
// source to nets, nets to sites with cost = HPWL increase, sites to a sink.
// No direct example in the retrieved corpus implements min-cost flow; this
// is a standard successive-shortest-augmenting-path formulation (Bellman-Ford
// per augmentation, since residual edges carry negative cost).
type mcmf struct {
	n     int
	graph [][]int
	edges []mcmfEdge
}

func newMCMF(n int) *mcmf {
	return &mcmf{n: n, graph: make([][]int, n)}
}

func (g *mcmf) addEdge(from, to, cap int, cost float64) {
	g.graph[from] = append(g.graph[from], len(g.edges))
	g.edges = append(g.edges, mcmfEdge{to: to, cap: cap, cost: cost})
	g.graph[to] = append(g.graph[to], len(g.edges))
	g.edges = append(g.edges, mcmfEdge{to: from, cap: 0, cost: -cost})
}

// run drives successive shortest augmenting paths from source to sink,
// returning the total flow pushed and its total cost.
func (g *mcmf) run(source, sink int) (flow int, cost float64) {
	for {
		dist := make([]float64, g.n)
		prevEdge := make([]int, g.n)
		inQueue := make([]bool, g.n)
		for i := range dist {
			dist[i] = mcmfInf
			prevEdge[i] = -1
		}
		dist[source] = 0
		queue := []int{source}
		inQueue[source] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			inQueue[u] = false
			for _, eIdx := range g.graph[u] {
				e := g.edges[eIdx]
				if e.cap-e.flow <= 0 {
					continue
				}
				if nd := dist[u] + e.cost; nd < dist[e.to]-1e-12 {
					dist[e.to] = nd
					prevEdge[e.to] = eIdx
					if !inQueue[e.to] {
						queue = append(queue, e.to)
						inQueue[e.to] = true
					}
				}
			}
		}
		if dist[sink] >= mcmfInf {
			return
		}

		bottleneck := math.MaxInt32
		for v := sink; v != source; {
			eIdx := prevEdge[v]
			if avail := g.edges[eIdx].cap - g.edges[eIdx].flow; avail < bottleneck {
				bottleneck = avail
			}
			v = g.edges[eIdx^1].to
		}
		for v := sink; v != source; {
			eIdx := prevEdge[v]
			g.edges[eIdx].flow += bottleneck
			g.edges[eIdx^1].flow -= bottleneck
			v = g.edges[eIdx^1].to
		}
		flow += bottleneck
		cost += dist[sink] * float64(bottleneck)
	}
}
