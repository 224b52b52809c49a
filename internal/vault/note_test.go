package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoteFrontMatter(t *testing.T) {
	t.Parallel()
	n := parseTestNote(t, "---\ntags:\n  - review\n  - flashcards/math\nsr-due: 2023-09-06\nsr-interval: 4\nsr-ease: 270\n---\nBody with #inline and [[Other|alias]] and [[Other#Heading]] and [[dir/third]]\n")

	assert.Equal(t, []string{"#review", "#flashcards/math", "#inline"}, n.note.Tags)
	rec, ok := n.note.Schedule()
	require.True(t, ok)
	assert.Equal(t, "2023-09-06", rec.FormatDueDate())
	assert.Equal(t, 4.0, rec.Interval)
	assert.Equal(t, 270.0, rec.Ease)
	assert.Equal(t, map[string]int{"Other": 2, "dir/third": 1}, n.links)
}

func TestParseNoteScheduleNeedsAllKeys(t *testing.T) {
	t.Parallel()
	n := parseTestNote(t, "---\ntags: review\nsr-due: 2023-09-06\nsr-ease: 270\n---\n")
	assert.False(t, n.note.HasSchedule())
	assert.Equal(t, []string{"#review"}, n.note.Tags)
}

func TestParseNoteInvalidFrontMatter(t *testing.T) {
	t.Parallel()
	n := parseTestNote(t, "---\ntags: [unclosed\n---\n#review\n")
	assert.Equal(t, []string{"#review"}, n.note.Tags)
	assert.False(t, n.note.HasSchedule())
}

func TestInlineTags(t *testing.T) {
	t.Parallel()
	tags := inlineTags([]string{
		"# Heading",
		"#flashcards/bio some text #flashcards/bio #2023 #a-b_c",
		"http://example.com/#anchor and issue#12",
	})
	assert.Equal(t, []string{"#flashcards/bio", "#a-b_c"}, tags)
}

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		content  string
		fm       string
		body     string
		bodyLine int
		ok       bool
	}{
		{name: "none", content: "hello\n", body: "hello\n"},
		{name: "simple", content: "---\na: 1\n---\nbody\n", fm: "a: 1\n", body: "body\n", bodyLine: 3, ok: true},
		{name: "empty", content: "---\n---\n", fm: "", body: "", bodyLine: 2, ok: true},
		{name: "unterminated", content: "---\na: 1\n", body: "---\na: 1\n"},
		{name: "dots terminator", content: "---\na: 1\n...\nx", fm: "a: 1\n", body: "x", bodyLine: 3, ok: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fm, body, line, ok := splitFrontMatter(tc.content)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.fm, fm)
			assert.Equal(t, tc.body, body)
			assert.Equal(t, tc.bodyLine, line)
		})
	}
}
