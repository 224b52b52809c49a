package vault

import (
	"strings"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
)

// questionParser turns the body lines of one note into questions.
type questionParser struct {
	opts     Options
	notePath string
	// noteTopics are the flashcard tags of the note, used for questions
	// without a leading tag of their own.
	noteTopics []domain.TopicPath
}

// parse scans lines (the body, starting at file line lineOffset) for
// single-line, multi-line and cloze questions.
func (p *questionParser) parse(lines []string, lineOffset int) []*domain.Question {
	var (
		questions  []*domain.Question
		block      []string
		blockStart int
		inFence    bool
	)

	flush := func() {
		if len(block) > 0 {
			if q := p.parseBlock(block, lineOffset+blockStart); q != nil {
				questions = append(questions, q)
			}
		}
		block = nil
	}

	for i, line := range lines {
		if isFence(line) {
			flush()
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if qt, ok := p.singleLineType(line); ok {
			flush()
			if q := p.parseSingleLine(line, qt, lineOffset+i); q != nil {
				questions = append(questions, q)
			}
			continue
		}
		if len(block) == 0 {
			blockStart = i
		}
		block = append(block, line)
	}
	flush()

	return questions
}

func (p *questionParser) singleLineType(line string) (domain.QuestionType, bool) {
	text := stripSRComment(line)
	switch {
	case p.opts.SingleLineReversedSeparator != "" && strings.Contains(text, p.opts.SingleLineReversedSeparator):
		return domain.QuestionSingleLineReversed, true
	case p.opts.SingleLineSeparator != "" && strings.Contains(text, p.opts.SingleLineSeparator):
		return domain.QuestionSingleLineBasic, true
	}
	return "", false
}

func (p *questionParser) parseSingleLine(line string, qt domain.QuestionType, lineNo int) *domain.Question {
	text := strings.TrimSpace(stripSRComment(line))
	topics, body := p.topicsFor(text)
	if len(topics) == 0 {
		return nil
	}

	sep := p.opts.SingleLineSeparator
	if qt == domain.QuestionSingleLineReversed {
		sep = p.opts.SingleLineReversedSeparator
	}
	front, back, _ := strings.Cut(body, sep)
	front, back = strings.TrimSpace(front), strings.TrimSpace(back)
	if front == "" || back == "" {
		return nil
	}

	q := p.newQuestion(qt, text, line, lineNo, topics)
	schedules := srs.ParseCardSchedules(findSRComment(line))
	q.AddCard(front, back, scheduleAt(schedules, 0))
	if qt == domain.QuestionSingleLineReversed {
		q.AddCard(back, front, scheduleAt(schedules, 1))
	}
	return q
}

func (p *questionParser) parseBlock(block []string, lineNo int) *domain.Question {
	raw := strings.Join(block, "\n")
	comment := findSRComment(raw)

	var lines []string
	for _, line := range block {
		if stripped := stripSRComment(line); strings.TrimSpace(stripped) != "" {
			lines = append(lines, stripped)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	topics, body := p.topicsFor(text)
	if len(topics) == 0 {
		return nil
	}
	bodyLines := strings.Split(body, "\n")
	schedules := srs.ParseCardSchedules(comment)

	for i, line := range bodyLines {
		t := strings.TrimSpace(line)
		var qt domain.QuestionType
		switch t {
		case p.opts.MultilineReversedSeparator:
			qt = domain.QuestionMultiLineReversed
		case p.opts.MultilineSeparator:
			qt = domain.QuestionMultiLineBasic
		default:
			continue
		}
		front := strings.TrimSpace(strings.Join(bodyLines[:i], "\n"))
		back := strings.TrimSpace(strings.Join(bodyLines[i+1:], "\n"))
		if front == "" || back == "" {
			return nil
		}
		q := p.newQuestion(qt, text, raw, lineNo, topics)
		q.AddCard(front, back, scheduleAt(schedules, 0))
		if qt == domain.QuestionMultiLineReversed {
			q.AddCard(back, front, scheduleAt(schedules, 1))
		}
		return q
	}

	if !p.opts.ConvertHighlightsToClozes {
		return nil
	}
	clozes := clozePattern.FindAllStringSubmatchIndex(body, -1)
	if len(clozes) == 0 {
		return nil
	}
	q := p.newQuestion(domain.QuestionCloze, text, raw, lineNo, topics)
	for i := range clozes {
		front, back := clozeSides(body, clozes, i)
		q.AddCard(front, back, scheduleAt(schedules, i))
	}
	return q
}

// clozeSides renders the card for cloze i: the front hides it, the back
// keeps it highlighted. Other clozes are shown as plain text on both sides.
func clozeSides(text string, clozes [][]int, hidden int) (front, back string) {
	var f, b strings.Builder
	pos := 0
	for i, m := range clozes {
		f.WriteString(text[pos:m[0]])
		b.WriteString(text[pos:m[0]])
		answer := text[m[2]:m[3]]
		if i == hidden {
			f.WriteString("[...]")
			b.WriteString("==" + answer + "==")
		} else {
			f.WriteString(answer)
			b.WriteString(answer)
		}
		pos = m[1]
	}
	f.WriteString(text[pos:])
	b.WriteString(text[pos:])
	return strings.TrimSpace(f.String()), strings.TrimSpace(b.String())
}

// topicsFor returns the decks of a question and its text without a leading
// flashcard tag. A leading tag overrides the note's tags.
func (p *questionParser) topicsFor(text string) ([]domain.TopicPath, string) {
	first, rest, _ := strings.Cut(text, " ")
	if firstLine, _, found := strings.Cut(first, "\n"); found {
		first = firstLine
		rest = strings.TrimPrefix(text, firstLine)
	}
	if strings.HasPrefix(first, "#") && p.opts.IsFlashcardTag(first) {
		return []domain.TopicPath{domain.ParseTopicPath(first)}, strings.TrimSpace(rest)
	}
	return p.noteTopics, text
}

func (p *questionParser) newQuestion(qt domain.QuestionType, text, raw string, lineNo int, topics []domain.TopicPath) *domain.Question {
	q := domain.NewQuestion(p.notePath, qt, text, lineNo)
	q.RawText = raw
	q.TopicPaths = topics
	return q
}

func scheduleAt(schedules []*domain.ScheduleRecord, i int) *domain.ScheduleRecord {
	if i < len(schedules) {
		return schedules[i]
	}
	return nil
}
