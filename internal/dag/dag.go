// Package dag provides directed acyclic graph operations for table dependencies.
// It supports deterministic topological sorting and cycle reporting.
package dag

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError is returned by TopologicalSort when the graph is not acyclic.
// Nodes lists every node that participates in at least one cycle, sorted.
type CycleError struct {
	Nodes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected among [%s]", strings.Join(e.Nodes, ", "))
}

// Graph is a directed graph where an edge parent -> child means child depends on parent.
type Graph struct {
	nodes   map[string]struct{}
	edges   map[string][]string // parent -> children (dependents)
	parents map[string][]string // child -> parents (dependencies)
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]struct{}),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if _, exists := g.nodes[id]; exists {
		return
	}
	g.nodes[id] = struct{}{}
	g.edges[id] = []string{}
	g.parents[id] = []string{}
}

// AddEdge adds a directed edge from parent to child (child depends on parent).
// A self-loop is recorded like any other edge and reported as a cycle.
func (g *Graph) AddEdge(parentID, childID string) error {
	if _, exists := g.nodes[parentID]; !exists {
		return fmt.Errorf("parent node %q does not exist", parentID)
	}
	if _, exists := g.nodes[childID]; !exists {
		return fmt.Errorf("child node %q does not exist", childID)
	}

	if !contains(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
	}
	if !contains(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}
	return nil
}

func (g *Graph) children(id string) []string {
	return sortedCopy(g.edges[id])
}

// Nodes returns all node IDs, sorted.
func (g *Graph) Nodes() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TopologicalSort returns node IDs so that every node appears after all of its
// parents. It uses Kahn's algorithm; whenever several nodes are ready at the
// same time the alphabetically smallest is emitted first, so the order depends
// only on the graph and never on insertion or map iteration order.
func (g *Graph) TopologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = len(g.parents[id])
	}

	var ready []string
	for id, d := range inDegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		for _, child := range g.edges[id] {
			inDegree[child]--
			if inDegree[child] == 0 {
				ready = insertSorted(ready, child)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, &CycleError{Nodes: g.cycleNodes()}
	}
	return order, nil
}

// Cycles returns the strongly connected components that form cycles: every
// component with more than one node, plus single nodes with a self-loop.
// Components and their members are sorted.
func (g *Graph) Cycles() [][]string {
	index := 0
	indices := make(map[string]int, len(g.nodes))
	lowlink := make(map[string]int, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))
	var stack []string
	var cycles [][]string

	var strongConnect func(id string)
	strongConnect = func(id string) {
		indices[id] = index
		lowlink[id] = index
		index++
		stack = append(stack, id)
		onStack[id] = true

		for _, child := range g.children(id) {
			if _, visited := indices[child]; !visited {
				strongConnect(child)
				lowlink[id] = min(lowlink[id], lowlink[child])
			} else if onStack[child] {
				lowlink[id] = min(lowlink[id], indices[child])
			}
		}

		if lowlink[id] != indices[id] {
			return
		}

		var component []string
		for {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[n] = false
			component = append(component, n)
			if n == id {
				break
			}
		}
		if len(component) > 1 || contains(g.edges[id], id) {
			sort.Strings(component)
			cycles = append(cycles, component)
		}
	}

	for _, id := range g.Nodes() {
		if _, visited := indices[id]; !visited {
			strongConnect(id)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}

func (g *Graph) cycleNodes() []string {
	var nodes []string
	for _, c := range g.Cycles() {
		nodes = append(nodes, c...)
	}
	sort.Strings(nodes)
	return nodes
}

func insertSorted(s []string, v string) []string {
	i := sort.SearchStrings(s, v)
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

// contains checks if a slice contains a string.
func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
