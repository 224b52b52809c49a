// Package deck holds the deck tree flashcards are filed into and the
// iterator that walks it during a review session.
//
// Iteration consumes the tree: every drawn card is removed from the decks
// being traversed. Callers that need the tree afterwards iterate over a
// DeepClone.
package deck
