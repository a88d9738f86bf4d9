package model

import "math"

// Walk visits n and everything below it depth first. Shared nodes are visited
// once per parent. Returning false from fn skips the children of that node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if s, ok := n.(*Sequence); ok {
		for _, c := range s.children {
			walk(c, depth+1, fn)
		}
	}
}

type Stats struct {
	Visits    int `json:"visits"`
	Distinct  int `json:"distinct"`
	Shared    int `json:"shared"`
	Events    int `json:"events"`
	Rests     int `json:"rests"`
	Sequences int `json:"sequences"`
	Repeated  int `json:"repeated"`
	MaxDepth  int `json:"max_depth"`
}

// Occurrences maps every distinct node below root to the number of positions
// it holds in the tree with sharing expanded. Each distinct node is handled
// once, so long chains of shared references stay cheap. Counts saturate at
// math.MaxInt.
func Occurrences(root Node) map[Node]int {
	occ, _ := occurrences(root)
	return occ
}

func occurrences(root Node) (occ map[Node]int, depth map[Node]int) {
	nodes := topological(root)
	occ = map[Node]int{root: 1}
	depth = map[Node]int{root: 0}
	for _, n := range nodes {
		s, ok := n.(*Sequence)
		if !ok {
			continue
		}
		for _, c := range s.children {
			occ[c] = addSaturated(occ[c], occ[n])
			if d := depth[n] + 1; d > depth[c] {
				depth[c] = d
			}
		}
	}
	return occ, depth
}

// topological lists the distinct nodes below root with every parent before
// its children.
func topological(root Node) []Node {
	seen := make(map[Node]bool)
	var post []Node
	var visit func(Node)
	visit = func(n Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		if s, ok := n.(*Sequence); ok {
			for _, c := range s.children {
				visit(c)
			}
		}
		post = append(post, n)
	}
	visit(root)

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

func addSaturated(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Collect counts the nodes below root. Visits counts every position in the
// expanded tree; Events, Rests, Sequences and Repeated count distinct nodes;
// Shared counts distinct nodes that occur at more than one position.
func Collect(root Node) Stats {
	var st Stats
	occ, depth := occurrences(root)
	for n, c := range occ {
		st.Visits = addSaturated(st.Visits, c)
		if c > 1 {
			st.Shared++
		}
		if depth[n] > st.MaxDepth {
			st.MaxDepth = depth[n]
		}
		switch v := n.(type) {
		case *Event:
			st.Events++
		case *Rest:
			st.Rests++
		case *Sequence:
			st.Sequences++
			if !v.repeat.IsZero() {
				st.Repeated++
			}
		}
	}
	st.Distinct = len(occ)
	return st
}
