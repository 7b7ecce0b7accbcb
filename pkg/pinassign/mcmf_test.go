package pinassign

import "testing"

func TestMCMFPicksCheaperPairing(t *testing.T) {
	// source(0) -> {1,2} -> {3,4} -> sink(5), cost matrix favors 1-3, 2-4.
	g := newMCMF(6)
	source, sink := 0, 5
	g.addEdge(source, 1, 1, 0)
	g.addEdge(source, 2, 1, 0)
	g.addEdge(3, sink, 1, 0)
	g.addEdge(4, sink, 1, 0)
	g.addEdge(1, 3, 1, 1) // cheap
	g.addEdge(1, 4, 1, 10)
	g.addEdge(2, 3, 1, 10)
	g.addEdge(2, 4, 1, 1) // cheap

	flow, cost := g.run(source, sink)
	if flow != 2 {
		t.Fatalf("flow = %d, want 2", flow)
	}
	if cost != 2 {
		t.Fatalf("cost = %v, want 2 (the two cheap edges)", cost)
	}
}

func TestMCMFRespectsCapacity(t *testing.T) {
	g := newMCMF(4)
	source, sink := 0, 3
	g.addEdge(source, 1, 1, 0)
	g.addEdge(1, 2, 1, 5)
	g.addEdge(2, sink, 1, 0)

	flow, _ := g.run(source, sink)
	if flow != 1 {
		t.Fatalf("flow = %d, want 1 (bottleneck capacity)", flow)
	}
}

func TestMCMFNoPathReturnsZeroFlow(t *testing.T) {
	g := newMCMF(4)
	source, sink := 0, 3
	g.addEdge(source, 1, 1, 0)
	g.addEdge(2, sink, 1, 0) // disconnected from node 1

	flow, cost := g.run(source, sink)
	if flow != 0 || cost != 0 {
		t.Fatalf("flow, cost = %d, %v; want 0, 0", flow, cost)
	}
}
