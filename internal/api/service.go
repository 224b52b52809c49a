package api

import (
	"context"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/review"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/stats"
)

// ReviewService is the part of review.Service the HTTP API serves.
type ReviewService interface {
	DeckTree(ctx context.Context) (*review.DeckSummary, error)
	StartSession(ctx context.Context, topicPath string) (*review.SessionView, error)
	CurrentCard(ctx context.Context) (*review.CardView, error)
	Answer(ctx context.Context, response domain.ReviewResponse) (*review.AnswerView, error)
	Skip(ctx context.Context) (*review.CardView, error)

	NoteDecks(ctx context.Context) ([]review.NoteDeckView, error)
	NextNote(ctx context.Context, tag string) (*review.NoteView, error)
	ReviewNote(ctx context.Context, path string, response domain.ReviewResponse) (*review.NoteView, error)

	Forecast(ctx context.Context, g stats.Granularity) (*review.ForecastView, error)
	Stats(ctx context.Context) (*review.StatsView, error)
}

var _ ReviewService = (*review.Service)(nil)
