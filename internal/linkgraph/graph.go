package linkgraph

import (
	"maps"
	"math"
	"slices"
)

const (
	// DefaultDamping is the probability of following a link rather than jumping.
	DefaultDamping = 0.85
	// DefaultTolerance is the L1 change below which ranks are considered converged.
	DefaultTolerance = 1e-6
	// MaxIterations bounds the power iteration.
	MaxIterations = 1000
)

// LinkStat describes one link partner of a note.
type LinkStat struct {
	Path  string
	Count int
	Rank  float64
}

// Graph holds outgoing link counts per source and the ranks computed from
// them. Ranks are stale after AddLink until ComputeRanks runs again.
type Graph struct {
	outgoing map[string]map[string]int
	incoming map[string]map[string]int
	rank     map[string]float64

	damping   float64
	tolerance float64
}

// New creates an empty graph with the default damping and tolerance.
func New() *Graph {
	g := &Graph{damping: DefaultDamping, tolerance: DefaultTolerance}
	g.Reset()
	return g
}

// Reset discards all links and ranks.
func (g *Graph) Reset() {
	g.outgoing = make(map[string]map[string]int)
	g.incoming = make(map[string]map[string]int)
	g.rank = make(map[string]float64)
}

// AddLink records count links from source to target. Non-positive counts
// and self links are ignored.
func (g *Graph) AddLink(source, target string, count int) {
	if count <= 0 || source == target || source == "" || target == "" {
		return
	}
	if g.outgoing[source] == nil {
		g.outgoing[source] = make(map[string]int)
	}
	if g.incoming[target] == nil {
		g.incoming[target] = make(map[string]int)
	}
	g.outgoing[source][target] += count
	g.incoming[target][source] += count
}

// AddLinksFromSource records every target -> count pair resolved for source.
func (g *Graph) AddLinksFromSource(source string, targets map[string]int) {
	for _, target := range slices.Sorted(maps.Keys(targets)) {
		g.AddLink(source, target, targets[target])
	}
}

// Nodes returns every path that appears as a source or target, sorted.
func (g *Graph) Nodes() []string {
	set := make(map[string]struct{}, len(g.outgoing)+len(g.incoming))
	for k := range g.outgoing {
		set[k] = struct{}{}
	}
	for k := range g.incoming {
		set[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// ComputeRanks runs weighted PageRank to a fixed point. Each source spreads
// its rank over its targets in proportion to the link counts; rank held by
// nodes without outgoing links is spread evenly over all nodes. It returns
// the number of iterations performed.
func (g *Graph) ComputeRanks() int {
	nodes := g.Nodes()
	n := len(nodes)
	g.rank = make(map[string]float64, n)
	if n == 0 {
		return 0
	}

	outWeight := make(map[string]int, len(g.outgoing))
	for src, targets := range g.outgoing {
		for _, c := range targets {
			outWeight[src] += c
		}
	}

	current := make(map[string]float64, n)
	for _, node := range nodes {
		current[node] = 1 / float64(n)
	}

	iterations := 0
	for iterations < MaxIterations {
		iterations++

		dangling := 0.0
		for _, node := range nodes {
			if outWeight[node] == 0 {
				dangling += current[node]
			}
		}

		base := (1-g.damping)/float64(n) + g.damping*dangling/float64(n)
		next := make(map[string]float64, n)
		for _, node := range nodes {
			sum := 0.0
			for src, c := range g.incoming[node] {
				sum += current[src] * float64(c) / float64(outWeight[src])
			}
			next[node] = base + g.damping*sum
		}

		delta := 0.0
		for _, node := range nodes {
			delta += math.Abs(next[node] - current[node])
		}
		current = next
		if delta < g.tolerance {
			break
		}
	}

	g.rank = current
	return iterations
}

// Rank returns the computed rank of path, 0 for unknown paths.
func (g *Graph) Rank(path string) float64 {
	return g.rank[path]
}

// Outgoing returns the link partners path links to, sorted by path.
func (g *Graph) Outgoing(path string) []LinkStat {
	return g.stats(g.outgoing[path])
}

// Incoming returns the link partners that link to path, sorted by path.
func (g *Graph) Incoming(path string) []LinkStat {
	return g.stats(g.incoming[path])
}

// Related returns incoming partners followed by outgoing ones. A note that
// both links to and is linked from path appears twice.
func (g *Graph) Related(path string) []LinkStat {
	return append(g.Incoming(path), g.Outgoing(path)...)
}

// LinkCount returns the number of links recorded from source to target.
func (g *Graph) LinkCount(source, target string) int {
	return g.outgoing[source][target]
}

func (g *Graph) stats(partners map[string]int) []LinkStat {
	if len(partners) == 0 {
		return nil
	}
	out := make([]LinkStat, 0, len(partners))
	for _, p := range slices.Sorted(maps.Keys(partners)) {
		out = append(out, LinkStat{Path: p, Count: partners[p], Rank: g.rank[p]})
	}
	return out
}
