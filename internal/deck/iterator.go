package deck

import (
	"fmt"
	"slices"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

// Iterator yields the cards of a deck subtree one at a time.
//
// Drawing a card removes it from every deck of the subtree being traversed,
// so a card filed under several topics is yielded once.
// DeleteCurrentCardFromAllDecks additionally removes it from decks outside the
// subtree.
type Iterator struct {
	order  IteratorOrder
	random RandomSource
	root   *Deck

	// Set by SetIteratorTopicPath.
	initialized bool
	decks       []*Deck
	inTraversal map[*Deck]bool
	cardDecks   map[*domain.Card][]*Deck
	deckIdx     int

	currentDeck *Deck
	currentCard *domain.Card
	currentList CardListType
}

// NewIterator creates an iterator over root. A nil random uses math/rand.
func NewIterator(order IteratorOrder, random RandomSource, root *Deck) *Iterator {
	if root == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("root deck cannot be nil")
	}
	if random == nil {
		random = NewRandomSource(nil)
	}
	return &Iterator{order: order, random: random, root: root}
}

// Order returns the iteration order.
func (it *Iterator) Order() IteratorOrder {
	return it.order
}

// SetIteratorTopicPath restarts traversal at the deck named by path. An
// empty path traverses the whole tree.
func (it *Iterator) SetIteratorTopicPath(path domain.TopicPath) error {
	base := it.root.GetDeck(path)
	if base == nil {
		return fmt.Errorf("%w: %s", ErrDeckNotFound, path)
	}

	it.decks = it.decks[:0]
	it.inTraversal = make(map[*Deck]bool)
	base.Walk(func(d *Deck) {
		it.decks = append(it.decks, d)
		it.inTraversal[d] = true
	})

	it.cardDecks = make(map[*domain.Card][]*Deck)
	it.root.Walk(func(d *Deck) {
		for _, t := range []CardListType{CardListNew, CardListDue} {
			for _, c := range d.Cards(t) {
				if !slices.Contains(it.cardDecks[c], d) {
					it.cardDecks[c] = append(it.cardDecks[c], d)
				}
			}
		}
	})

	it.deckIdx = -1
	it.currentDeck = nil
	it.currentCard = nil
	it.initialized = true
	return nil
}

// CurrentDeck returns the deck the current card was drawn from.
func (it *Iterator) CurrentDeck() *Deck {
	return it.currentDeck
}

// CurrentCard returns the card drawn by the last successful NextCard.
func (it *Iterator) CurrentCard() *domain.Card {
	return it.currentCard
}

// CurrentQuestion returns the question of the current card.
func (it *Iterator) CurrentQuestion() *domain.Question {
	if it.currentCard == nil {
		return nil
	}
	return it.currentCard.Question
}

// HasCurrentCard reports whether a card is currently drawn.
func (it *Iterator) HasCurrentCard() bool {
	return it.currentCard != nil
}

// NextCard advances to the next card. It returns false once the subtree is
// exhausted, and keeps returning false on later calls.
func (it *Iterator) NextCard() (bool, error) {
	if !it.initialized {
		return false, fmt.Errorf("%w: topic path not set", ErrIllegalState)
	}

	it.currentCard = nil
	if it.order.everyCardRandom() {
		return it.nextRandomCard(), nil
	}

	for {
		if it.currentDeck == nil || it.currentDeck.TotalCardCount(false) == 0 {
			if !it.nextDeck() {
				it.currentDeck = nil
				return false, nil
			}
		}
		if it.drawFromCurrentDeck() {
			return true, nil
		}
	}
}

// nextDeck moves to the next deck with cards left.
func (it *Iterator) nextDeck() bool {
	if it.order.DeckOrder == DeckOrderRandomOnceComplete {
		var remaining []*Deck
		for _, d := range it.decks {
			if d.TotalCardCount(false) > 0 {
				remaining = append(remaining, d)
			}
		}
		if len(remaining) == 0 {
			return false
		}
		it.currentDeck = remaining[it.random.NextInt(0, len(remaining)-1)]
		return true
	}

	for it.deckIdx+1 < len(it.decks) {
		it.deckIdx++
		if d := it.decks[it.deckIdx]; d.TotalCardCount(false) > 0 {
			it.currentDeck = d
			return true
		}
	}
	return false
}

func (it *Iterator) drawFromCurrentDeck() bool {
	first, second := CardListDue, CardListNew
	if it.order.newFirst() {
		first, second = CardListNew, CardListDue
	}

	for _, t := range []CardListType{first, second} {
		cards := it.currentDeck.Cards(t)
		if len(cards) == 0 {
			continue
		}
		idx := 0
		if it.order.randomWithinDeck() {
			idx = it.random.NextInt(0, len(cards)-1)
		}
		it.draw(it.currentDeck, t, cards[idx])
		return true
	}
	return false
}

type cardRef struct {
	deck *Deck
	list CardListType
	card *domain.Card
}

// nextRandomCard picks uniformly among every card left in the subtree.
func (it *Iterator) nextRandomCard() bool {
	var refs []cardRef
	for _, d := range it.decks {
		for _, t := range []CardListType{CardListNew, CardListDue} {
			for _, c := range d.Cards(t) {
				refs = append(refs, cardRef{deck: d, list: t, card: c})
			}
		}
	}
	if len(refs) == 0 {
		it.currentDeck = nil
		return false
	}

	ref := refs[it.random.NextInt(0, len(refs)-1)]
	it.draw(ref.deck, ref.list, ref.card)
	return true
}

func (it *Iterator) draw(d *Deck, t CardListType, card *domain.Card) {
	it.currentDeck = d
	it.currentList = t
	it.currentCard = card

	for _, holder := range it.cardDecks[card] {
		if it.inTraversal[holder] {
			holder.DeleteCard(card)
		}
	}
	// Cards filed after the topic path was set are not in the index.
	d.DeleteCard(card)
}

// DeleteCurrentCardFromAllDecks removes the current card from every deck of
// the tree, including decks outside the traversed subtree, then advances.
// It returns whether a next card is available.
func (it *Iterator) DeleteCurrentCardFromAllDecks() (bool, error) {
	if it.currentCard == nil {
		return false, fmt.Errorf("%w: no current card to delete", ErrIllegalState)
	}
	it.RemoveFromAllDecks(it.currentCard)
	return it.NextCard()
}

// RemoveFromAllDecks removes card from every deck of the tree that holds it
// and returns the number of decks it was removed from. The current card is
// left unchanged.
func (it *Iterator) RemoveFromAllDecks(card *domain.Card) int {
	removed := 0
	for _, holder := range it.cardDecks[card] {
		if holder.DeleteCard(card) {
			removed++
		}
	}
	return removed
}

// RequeueCurrentCard puts the current card back at the end of the list it was
// drawn from in the current deck, so it comes up again later in the session.
// There is no current card afterwards.
func (it *Iterator) RequeueCurrentCard() error {
	if it.currentCard == nil {
		return fmt.Errorf("%w: no current card to requeue", ErrIllegalState)
	}
	list := it.currentDeck.list(it.currentList)
	*list = append(*list, it.currentCard)
	it.currentCard = nil
	return nil
}
