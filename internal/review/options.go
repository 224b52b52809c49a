package review

import (
	"fmt"
	"strings"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/config"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/deck"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

// Mode selects which cards a session offers.
type Mode string

const (
	// ModeReview offers new cards and cards due today or earlier, and saves
	// every answer.
	ModeReview Mode = "review"
	// ModeCram offers every card and saves nothing.
	ModeCram Mode = "cram"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeReview, "":
		return ModeReview, nil
	case ModeCram:
		return ModeCram, nil
	}
	return "", fmt.Errorf("%w: unknown review mode %q", domain.ErrValidation, s)
}

// Options controls sessions and the note queue.
type Options struct {
	Order          deck.IteratorOrder
	Mode           Mode
	BurySiblings   bool
	OpenRandomNote bool
	NoteReviewTags []string
}

// DefaultOptions reviews decks sequentially, new cards first.
func DefaultOptions() Options {
	return Options{
		Order: deck.IteratorOrder{
			DeckOrder: deck.DeckOrderSequentialOnceComplete,
			CardOrder: deck.CardOrderNewFirstSequential,
		},
		Mode:           ModeReview,
		NoteReviewTags: []string{"#review"},
	}
}

// OptionsFromConfig reads the review and vault sections.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	order, err := cfg.IteratorOrder()
	if err != nil {
		return Options{}, err
	}
	mode, err := ParseMode(cfg.Review.Mode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Order:          order,
		Mode:           mode,
		BurySiblings:   cfg.Review.BurySiblings,
		OpenRandomNote: cfg.Review.OpenRandomNote,
		NoteReviewTags: cfg.Vault.NoteReviewTags,
	}, nil
}

// reviewTagsOf returns the note's tags that are review tags or nested below one.
func (o Options) reviewTagsOf(note *domain.Note) []string {
	var out []string
	for _, tag := range note.Tags {
		for _, base := range o.NoteReviewTags {
			if tag == base || strings.HasPrefix(tag, base+"/") {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}
