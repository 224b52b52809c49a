package deck

import (
	"fmt"
	"strings"
)

// DeckOrder controls how the iterator moves between decks.
type DeckOrder int

const (
	// DeckOrderSequentialOnceComplete drains decks one at a time in tree
	// order: a deck before its subdecks, subdecks in declared order.
	DeckOrderSequentialOnceComplete DeckOrder = iota
	// DeckOrderRandomOnceComplete drains decks one at a time, picking the
	// next deck at random among those with cards left.
	DeckOrderRandomOnceComplete
	// DeckOrderNoneEveryCardRandom ignores decks and picks every card at
	// random from the whole subtree.
	DeckOrderNoneEveryCardRandom
)

var deckOrderNames = map[DeckOrder]string{
	DeckOrderSequentialOnceComplete: "sequential",
	DeckOrderRandomOnceComplete:     "random",
	DeckOrderNoneEveryCardRandom:    "every-card-random",
}

func (o DeckOrder) String() string {
	if s, ok := deckOrderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("DeckOrder(%d)", int(o))
}

// ParseDeckOrder parses the configuration name of a deck order.
func ParseDeckOrder(s string) (DeckOrder, error) {
	for o, name := range deckOrderNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown deck order %q", s)
}

// CardOrder controls which card of a deck is drawn next.
type CardOrder int

const (
	CardOrderNewFirstSequential CardOrder = iota
	CardOrderDueFirstSequential
	CardOrderNewFirstRandom
	CardOrderDueFirstRandom
	// CardOrderEveryCardRandomDeckAndCard ignores decks and picks every card
	// at random from the whole subtree.
	CardOrderEveryCardRandomDeckAndCard
)

var cardOrderNames = map[CardOrder]string{
	CardOrderNewFirstSequential:         "new-first-sequential",
	CardOrderDueFirstSequential:         "due-first-sequential",
	CardOrderNewFirstRandom:             "new-first-random",
	CardOrderDueFirstRandom:             "due-first-random",
	CardOrderEveryCardRandomDeckAndCard: "every-card-random",
}

func (o CardOrder) String() string {
	if s, ok := cardOrderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("CardOrder(%d)", int(o))
}

// ParseCardOrder parses the configuration name of a card order.
func ParseCardOrder(s string) (CardOrder, error) {
	for o, name := range cardOrderNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown card order %q", s)
}

// IteratorOrder combines a deck order and a card order.
type IteratorOrder struct {
	DeckOrder DeckOrder
	CardOrder CardOrder
}

// everyCardRandom reports whether decks are ignored and each draw is a
// uniform pick over the whole subtree.
func (o IteratorOrder) everyCardRandom() bool {
	return o.DeckOrder == DeckOrderNoneEveryCardRandom ||
		o.CardOrder == CardOrderEveryCardRandomDeckAndCard
}

func (o IteratorOrder) newFirst() bool {
	return o.CardOrder == CardOrderNewFirstSequential || o.CardOrder == CardOrderNewFirstRandom
}

func (o IteratorOrder) randomWithinDeck() bool {
	return o.CardOrder == CardOrderNewFirstRandom || o.CardOrder == CardOrderDueFirstRandom
}
