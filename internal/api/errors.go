package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/api/shared"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/deck"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/review"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/vault"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking the error types themselves to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, review.ErrUnknownItem),
		errors.Is(err, deck.ErrDeckNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors: the request is fine but the state does not allow it
	case errors.Is(err, review.ErrNoSession),
		errors.Is(err, review.ErrNoCurrentCard),
		errors.Is(err, vault.ErrQuestionNotFound):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidResponse),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, review.ErrNotLoaded):
		return http.StatusServiceUnavailable

	// Special cases
	case errors.Is(err, review.ErrNoNotesDue):
		return http.StatusNoContent

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that reveals no
// internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, deck.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, review.ErrUnknownItem),
		errors.Is(err, store.ErrNotFound):
		return "Item not found"
	case errors.Is(err, review.ErrNoSession):
		return "No review session in progress"
	case errors.Is(err, review.ErrNoCurrentCard):
		return "No card to answer"
	case errors.Is(err, vault.ErrQuestionNotFound):
		return "The note changed since it was loaded; reload and try again"
	case errors.Is(err, domain.ErrInvalidResponse):
		return "Invalid response"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid data"
	case errors.Is(err, review.ErrNotLoaded):
		return "Collection is still loading"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. defaultMsg replaces the
// generic message of a 500 response when it is set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns a validator error into a short message naming
// the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "invalid value"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
