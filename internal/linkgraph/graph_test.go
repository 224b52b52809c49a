package linkgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLinkAccumulates(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddLink("a.md", "b.md", 2)
	g.AddLink("a.md", "b.md", 1)
	g.AddLink("a.md", "a.md", 5)
	g.AddLink("a.md", "c.md", 0)

	assert.Equal(t, 3, g.LinkCount("a.md", "b.md"))
	assert.Equal(t, 0, g.LinkCount("a.md", "a.md"))
	assert.Equal(t, []string{"a.md", "b.md"}, g.Nodes())

	in := g.Incoming("b.md")
	require.Len(t, in, 1)
	assert.Equal(t, "a.md", in[0].Path)
	assert.Equal(t, 3, in[0].Count)
}

func TestComputeRanksSumsToOne(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddLinksFromSource("a.md", map[string]int{"b.md": 1, "c.md": 3})
	g.AddLinksFromSource("b.md", map[string]int{"c.md": 1})
	g.AddLinksFromSource("c.md", map[string]int{"a.md": 1})
	g.AddLink("d.md", "c.md", 1)

	iterations := g.ComputeRanks()
	assert.Greater(t, iterations, 1)
	assert.LessOrEqual(t, iterations, MaxIterations)

	total := 0.0
	for _, n := range g.Nodes() {
		total += g.Rank(n)
	}
	assert.InDelta(t, 1.0, total, 1e-5)

	// c.md collects the most weight, d.md has no inbound links.
	assert.Greater(t, g.Rank("c.md"), g.Rank("a.md"))
	assert.Greater(t, g.Rank("a.md"), g.Rank("d.md"))
	assert.InDelta(t, (1-DefaultDamping)/4, g.Rank("d.md"), 0.05)
}

func TestComputeRanksSymmetricGraph(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddLink("x.md", "y.md", 1)
	g.AddLink("y.md", "x.md", 1)
	g.ComputeRanks()

	assert.InDelta(t, 0.5, g.Rank("x.md"), 1e-6)
	assert.InDelta(t, 0.5, g.Rank("y.md"), 1e-6)
}

func TestDanglingNodesKeepMass(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddLink("a.md", "b.md", 1)
	g.ComputeRanks()

	assert.InDelta(t, 1.0, g.Rank("a.md")+g.Rank("b.md"), 1e-5)
	assert.Greater(t, g.Rank("b.md"), g.Rank("a.md"))
}

func TestRelatedAndReset(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddLink("a.md", "b.md", 1)
	g.AddLink("b.md", "a.md", 2)
	g.AddLink("c.md", "a.md", 1)
	g.ComputeRanks()

	related := g.Related("a.md")
	require.Len(t, related, 3)
	assert.Equal(t, "b.md", related[0].Path)
	assert.Equal(t, 2, related[0].Count)
	assert.Equal(t, "c.md", related[1].Path)
	assert.Equal(t, "b.md", related[2].Path)
	assert.Equal(t, 1, related[2].Count)
	assert.Equal(t, g.Rank("b.md"), related[0].Rank)

	g.Reset()
	assert.Empty(t, g.Nodes())
	assert.Zero(t, g.Rank("a.md"))
	assert.Zero(t, g.ComputeRanks())
}
