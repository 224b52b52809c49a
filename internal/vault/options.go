package vault

import (
	"strings"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/config"
)

// Options controls how notes are parsed.
type Options struct {
	// FlashcardTags select the notes whose questions become cards, and name
	// the root decks.
	FlashcardTags []string
	// NoteReviewTags select the notes that are reviewed as a whole.
	NoteReviewTags []string
	// ConvertHighlightsToClozes turns ==highlighted== spans into cloze cards.
	ConvertHighlightsToClozes bool

	SingleLineSeparator         string
	SingleLineReversedSeparator string
	MultilineSeparator          string
	MultilineReversedSeparator  string
}

// DefaultOptions returns the standard separators with the #flashcards and
// #review tags.
func DefaultOptions() Options {
	return Options{
		FlashcardTags:               []string{"#flashcards"},
		NoteReviewTags:              []string{"#review"},
		ConvertHighlightsToClozes:   true,
		SingleLineSeparator:         "::",
		SingleLineReversedSeparator: ":::",
		MultilineSeparator:          "?",
		MultilineReversedSeparator:  "??",
	}
}

// OptionsFromConfig builds parsing options from the vault configuration.
func OptionsFromConfig(cfg config.VaultConfig) Options {
	opts := DefaultOptions()
	if len(cfg.FlashcardTags) > 0 {
		opts.FlashcardTags = cfg.FlashcardTags
	}
	if cfg.NoteReviewTags != nil {
		opts.NoteReviewTags = cfg.NoteReviewTags
	}
	opts.ConvertHighlightsToClozes = cfg.ConvertHighlightsToClozes
	return opts
}

// IsFlashcardTag reports whether tag is one of the flashcard tags or nested
// below one.
func (o Options) IsFlashcardTag(tag string) bool {
	return matchesAnyTag(tag, o.FlashcardTags)
}

// IsNoteReviewTag reports whether tag is one of the note review tags or
// nested below one.
func (o Options) IsNoteReviewTag(tag string) bool {
	return matchesAnyTag(tag, o.NoteReviewTags)
}

func matchesAnyTag(tag string, bases []string) bool {
	for _, base := range bases {
		if tag == base || strings.HasPrefix(tag, base+"/") {
			return true
		}
	}
	return false
}
