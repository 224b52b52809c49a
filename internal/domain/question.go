package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// QuestionType is the syntax a question was written in.
type QuestionType string

const (
	QuestionSingleLineBasic    QuestionType = "single_line_basic"
	QuestionSingleLineReversed QuestionType = "single_line_reversed"
	QuestionMultiLineBasic     QuestionType = "multi_line_basic"
	QuestionMultiLineReversed  QuestionType = "multi_line_reversed"
	QuestionCloze              QuestionType = "cloze"
)

// Question is one span of source text together with the cards generated from
// it. Siblings share a postponement identity: burying one buries them all.
type Question struct {
	NotePath   string       `json:"note_path"`
	Type       QuestionType `json:"type"`
	Text       string       `json:"text"`
	Hash       string       `json:"hash"`
	TopicPaths []TopicPath  `json:"topic_paths"`
	LineNo     int          `json:"line_no"`

	// RawText is the text as it currently appears in the note, schedule
	// comment included. Writers use it to locate the question.
	RawText string `json:"-"`

	Cards []*Card `json:"cards"`
}

// NewQuestion creates a question and computes its content hash.
func NewQuestion(notePath string, qt QuestionType, text string, lineNo int) *Question {
	return &Question{
		NotePath: notePath,
		Type:     qt,
		Text:     text,
		Hash:     ContentHash(text),
		LineNo:   lineNo,
		RawText:  text,
	}
}

// ID identifies the question within the collection.
func (q *Question) ID() string {
	return q.NotePath + "::" + q.Hash
}

// AddCard appends a card with the next card index.
func (q *Question) AddCard(front, back string, rec *ScheduleRecord) *Card {
	card := &Card{Question: q, Index: len(q.Cards), Front: front, Back: back}
	card.SetSchedule(rec)
	q.Cards = append(q.Cards, card)
	return card
}

// Schedules returns each card's schedule in card index order; nil for new cards.
func (q *Question) Schedules() []*ScheduleRecord {
	out := make([]*ScheduleRecord, len(q.Cards))
	for i, c := range q.Cards {
		if rec, ok := c.Schedule(); ok {
			out[i] = &rec
		}
	}
	return out
}

// ContentHash returns a short hex digest of the trimmed text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:8])
}
