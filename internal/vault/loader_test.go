package vault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderLoad(t *testing.T) {
	root := writeVault(t, map[string]string{
		"a.md":           "#flashcards\n\nQ1::A1\n\n[[b]] [[b]] [[sub/c]] [[missing]] [[a]]\n",
		"sub/b.md":       "---\ntags: [review]\n---\nSee [[a]]\n",
		"sub/c.md":       "#review\n",
		".obsidian/x.md": "#flashcards\n\nHidden::Card\n",
		"readme.txt":     "#flashcards\n\nText::Card\n",
	})

	col, err := NewLoader(root, DefaultOptions(), nil).Load(context.Background())
	require.NoError(t, err)

	paths := make([]string, 0, len(col.Notes))
	for _, n := range col.Notes {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []string{"a.md", "sub/b.md", "sub/c.md"}, paths)

	require.Len(t, col.Questions, 1)
	assert.Equal(t, "a.md", col.Questions[0].NotePath)

	assert.Equal(t, map[string]map[string]int{
		"a.md":     {"sub/b.md": 2, "sub/c.md": 1},
		"sub/b.md": {"a.md": 1},
	}, col.Links)

	b, ok := col.Note("sub/b.md")
	require.True(t, ok)
	assert.Equal(t, []string{"#review"}, b.Tags)
}

func TestLoaderLoadCancelled(t *testing.T) {
	root := writeVault(t, map[string]string{"a.md": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(root, DefaultOptions(), nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoaderMissingRoot(t *testing.T) {
	_, err := NewLoader(t.TempDir()+"/missing", DefaultOptions(), nil).Load(context.Background())
	assert.Error(t, err)
}

func TestLinkResolver(t *testing.T) {
	t.Parallel()
	r := newLinkResolver([]string{"a/x.md", "b/x.md", "y.md"})

	tests := map[string]string{
		"x":      "a/x.md",
		"b/x":    "b/x.md",
		"y.md":   "y.md",
		"c/y":    "y.md",
		"absent": "",
	}
	for target, want := range tests {
		got, ok := r.resolve(target)
		assert.Equal(t, want != "", ok, target)
		assert.Equal(t, want, got, target)
	}
}
