// Package main implements osr, which reviews the flashcards and notes of an
// Obsidian vault with spaced repetition. It serves the review API and prints
// the deck tree and statistics.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
