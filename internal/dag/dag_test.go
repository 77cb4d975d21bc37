package dag

import (
	"errors"
	"reflect"
	"testing"
)

func TestGraph_AddNodeAndEdge(t *testing.T) {
	g := NewGraph()

	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("a")

	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected nodes [a b], got %v", got)
	}

	// b depends on a
	if err := g.AddEdge("a", "b"); err != nil {
		t.Errorf("failed to add edge: %v", err)
	}
	// duplicate edges are ignored
	if err := g.AddEdge("a", "b"); err != nil {
		t.Errorf("failed to add duplicate edge: %v", err)
	}

	if got := g.children("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("expected children [b], got %v", got)
	}
	if got := g.parents["b"]; !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("expected parents [a], got %v", got)
	}
}

func TestGraph_AddEdge_InvalidNodes(t *testing.T) {
	g := NewGraph()
	g.AddNode("a")

	if err := g.AddEdge("a", "nonexistent"); err == nil {
		t.Error("expected error for nonexistent child node")
	}
	if err := g.AddEdge("nonexistent", "a"); err == nil {
		t.Error("expected error for nonexistent parent node")
	}
}

func TestGraph_TopologicalSort_AlphabeticalTieBreak(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"zeta", "beta", "alpha", "gamma"} {
		g.AddNode(id)
	}

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"alpha", "beta", "gamma", "zeta"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestGraph_TopologicalSort_DependenciesFirst(t *testing.T) {
	g := NewGraph()
	// insertion order deliberately puts dependents first
	for _, id := range []string{"games", "generations", "type_charts", "languages", "generation_names"} {
		g.AddNode(id)
	}
	g.AddEdge("generations", "games")
	g.AddEdge("type_charts", "generations")
	g.AddEdge("languages", "generation_names")
	g.AddEdge("generations", "generation_names")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"languages", "type_charts", "generations", "games", "generation_names"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestGraph_TopologicalSort_Deterministic(t *testing.T) {
	build := func(ids []string) *Graph {
		g := NewGraph()
		for _, id := range ids {
			g.AddNode(id)
		}
		g.AddEdge("a", "c")
		g.AddEdge("b", "c")
		g.AddEdge("c", "d")
		return g
	}

	first, err := build([]string{"d", "c", "b", "a", "e"}).TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := build([]string{"a", "e", "b", "c", "d"}).TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("order depends on insertion order: %v vs %v", first, second)
	}
	want := []string{"a", "b", "c", "d", "e"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("expected %v, got %v", want, first)
	}
}

func TestGraph_TopologicalSort_Cycle(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		g.AddNode(id)
	}
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "b") // b <-> c
	g.AddEdge("c", "d") // d only depends on the cycle

	_, err := g.TopologicalSort()

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CycleError, got %v", err)
	}
	if want := []string{"b", "c"}; !reflect.DeepEqual(cycleErr.Nodes, want) {
		t.Errorf("expected cycle nodes %v, got %v", want, cycleErr.Nodes)
	}
}

func TestGraph_Cycles_SelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddNode("species")
	g.AddNode("colors")
	if err := g.AddEdge("species", "species"); err != nil {
		t.Fatalf("self-loop should be recorded: %v", err)
	}

	cycles := g.Cycles()
	if want := [][]string{{"species"}}; !reflect.DeepEqual(cycles, want) {
		t.Errorf("expected %v, got %v", want, cycles)
	}

	if _, err := g.TopologicalSort(); err == nil {
		t.Error("expected self-loop to fail topological sort")
	}
}

func TestGraph_Cycles_Multiple(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"a", "b", "x", "y", "z"} {
		g.AddNode(id)
	}
	g.AddEdge("x", "y")
	g.AddEdge("y", "z")
	g.AddEdge("z", "x")
	g.AddEdge("b", "a")
	g.AddEdge("a", "b")

	want := [][]string{{"a", "b"}, {"x", "y", "z"}}
	if got := g.Cycles(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGraph_Empty(t *testing.T) {
	order, err := NewGraph().TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected empty order, got %v", order)
	}
}
