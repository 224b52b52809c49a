package vault

import (
	"log/slog"
	"strings"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

// parsedNote is one note with its questions and unresolved link targets.
type parsedNote struct {
	note      *domain.Note
	questions []*domain.Question
	links     map[string]int
}

// parseNote reads a note's front-matter, tags, links and questions.
// Invalid front-matter is logged and ignored.
func parseNote(path, content string, opts Options, log *slog.Logger) *parsedNote {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	fm, body, bodyLine, hasFrontMatter := splitFrontMatter(content)
	var (
		fmTags   []string
		schedule *domain.ScheduleRecord
	)
	if hasFrontMatter {
		m, err := parseFrontMatterNode(fm)
		if err != nil {
			log.Warn("ignoring invalid front-matter",
				slog.String("path", path),
				slog.String("error", err.Error()))
		} else {
			fmTags = frontMatterTags(m)
			schedule = frontMatterSchedule(m)
		}
	}

	lines := strings.Split(body, "\n")
	prose := proseLines(lines)
	tags := mergeTags(fmTags, inlineTags(prose))

	var topics []domain.TopicPath
	for _, tag := range tags {
		if opts.IsFlashcardTag(tag) {
			topics = append(topics, domain.ParseTopicPath(tag))
		}
	}

	p := &questionParser{opts: opts, notePath: path, noteTopics: topics}
	return &parsedNote{
		note:      domain.NewNote(path, tags, schedule),
		questions: p.parse(lines, bodyLine),
		links:     wikilinks(prose),
	}
}
