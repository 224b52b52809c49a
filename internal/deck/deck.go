package deck

import (
	"slices"
	"strings"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

// RootName is the name of the deck at the top of every tree.
const RootName = "root"

// CardListType selects one of a deck's two card lists.
type CardListType int

const (
	CardListNew CardListType = iota
	CardListDue
)

// String returns the list name.
func (t CardListType) String() string {
	if t == CardListDue {
		return "due"
	}
	return "new"
}

// Deck is a node in the deck tree. Cards are referenced, not owned: a card
// tagged with several topics appears in several decks, but at most once in
// each of a deck's lists.
type Deck struct {
	Name          string
	Parent        *Deck
	Subdecks      []*Deck
	NewFlashcards []*domain.Card
	DueFlashcards []*domain.Card
}

// NewRootDeck creates an empty tree.
func NewRootDeck() *Deck {
	return &Deck{Name: RootName}
}

// NewDeck creates a detached deck.
func NewDeck(name string, parent *Deck) *Deck {
	return &Deck{Name: name, Parent: parent}
}

// IsRoot reports whether the deck has no parent.
func (d *Deck) IsRoot() bool {
	return d.Parent == nil
}

// TopicPath returns the names from the top of the tree down to this deck,
// excluding the root.
func (d *Deck) TopicPath() domain.TopicPath {
	var names []string
	for deck := d; deck != nil && !deck.IsRoot(); deck = deck.Parent {
		names = append(names, deck.Name)
	}
	slices.Reverse(names)
	return domain.TopicPath(names)
}

// Subdeck returns the direct child with the given name.
func (d *Deck) Subdeck(name string) *Deck {
	for _, sub := range d.Subdecks {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// GetDeck returns the descendant at path relative to d, or nil. An empty
// path returns d itself.
func (d *Deck) GetDeck(path domain.TopicPath) *Deck {
	deck := d
	for _, name := range path {
		if deck = deck.Subdeck(name); deck == nil {
			return nil
		}
	}
	return deck
}

// GetOrCreateDeck returns the descendant at path, creating missing decks.
func (d *Deck) GetOrCreateDeck(path domain.TopicPath) *Deck {
	deck := d
	for _, name := range path {
		sub := deck.Subdeck(name)
		if sub == nil {
			sub = NewDeck(name, deck)
			deck.Subdecks = append(deck.Subdecks, sub)
		}
		deck = sub
	}
	return deck
}

// AppendCard files card under the deck at path. New cards go to the new
// list, scheduled ones to the due list. It returns false when the card is
// already in that list.
func (d *Deck) AppendCard(path domain.TopicPath, card *domain.Card) bool {
	return d.GetOrCreateDeck(path).appendCard(card)
}

func (d *Deck) appendCard(card *domain.Card) bool {
	list := d.list(listFor(card))
	if slices.Contains(*list, card) {
		return false
	}
	*list = append(*list, card)
	return true
}

func listFor(card *domain.Card) CardListType {
	if card.IsNew() {
		return CardListNew
	}
	return CardListDue
}

func (d *Deck) list(t CardListType) *[]*domain.Card {
	if t == CardListDue {
		return &d.DueFlashcards
	}
	return &d.NewFlashcards
}

// Cards returns the cards in one of the deck's own lists.
func (d *Deck) Cards(t CardListType) []*domain.Card {
	return *d.list(t)
}

// DeleteCard removes card from this deck's own lists.
func (d *Deck) DeleteCard(card *domain.Card) bool {
	removed := false
	for _, t := range []CardListType{CardListNew, CardListDue} {
		list := d.list(t)
		if i := slices.Index(*list, card); i >= 0 {
			*list = slices.Delete(*list, i, i+1)
			removed = true
		}
	}
	return removed
}

// CardCount counts the cards in one list, optionally including subdecks.
// A card filed in several decks is counted once per deck.
func (d *Deck) CardCount(t CardListType, includeSubdecks bool) int {
	n := len(*d.list(t))
	if includeSubdecks {
		for _, sub := range d.Subdecks {
			n += sub.CardCount(t, true)
		}
	}
	return n
}

// TotalCardCount counts new and due cards.
func (d *Deck) TotalCardCount(includeSubdecks bool) int {
	return d.CardCount(CardListNew, includeSubdecks) + d.CardCount(CardListDue, includeSubdecks)
}

// IsEmpty reports whether neither the deck nor its subdecks hold any card.
func (d *Deck) IsEmpty() bool {
	return d.TotalCardCount(true) == 0
}

// Walk calls fn for d and every descendant in pre-order, children in their
// declared order.
func (d *Deck) Walk(fn func(*Deck)) {
	fn(d)
	for _, sub := range d.Subdecks {
		sub.Walk(fn)
	}
}

// DeepClone copies the tree structure and card lists. Cards themselves are
// shared with the original.
func (d *Deck) DeepClone() *Deck {
	return d.CopyWithCardFilter(nil)
}

// CopyWithCardFilter copies the tree keeping only the cards for which keep
// returns true. A nil keep keeps every card. Decks left empty are kept so the
// shape of the tree is preserved.
func (d *Deck) CopyWithCardFilter(keep func(*domain.Card) bool) *Deck {
	return d.copyInto(nil, keep)
}

func (d *Deck) copyInto(parent *Deck, keep func(*domain.Card) bool) *Deck {
	out := &Deck{
		Name:          d.Name,
		Parent:        parent,
		NewFlashcards: filterCards(d.NewFlashcards, keep),
		DueFlashcards: filterCards(d.DueFlashcards, keep),
	}
	if len(d.Subdecks) > 0 {
		out.Subdecks = make([]*Deck, 0, len(d.Subdecks))
		for _, sub := range d.Subdecks {
			out.Subdecks = append(out.Subdecks, sub.copyInto(out, keep))
		}
	}
	return out
}

func filterCards(cards []*domain.Card, keep func(*domain.Card) bool) []*domain.Card {
	out := make([]*domain.Card, 0, len(cards))
	for _, c := range cards {
		if keep == nil || keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// SortSubdecks orders every level of the tree by deck name.
func (d *Deck) SortSubdecks() {
	slices.SortStableFunc(d.Subdecks, func(a, b *Deck) int {
		return strings.Compare(a.Name, b.Name)
	})
	for _, sub := range d.Subdecks {
		sub.SortSubdecks()
	}
}

// PruneEmpty removes subdecks that hold no cards at any depth.
func (d *Deck) PruneEmpty() {
	d.Subdecks = slices.DeleteFunc(d.Subdecks, func(sub *Deck) bool {
		sub.PruneEmpty()
		return sub.IsEmpty()
	})
}

// String renders the tree one deck per line, indented by depth.
func (d *Deck) String() string {
	var b strings.Builder
	d.render(&b, 0)
	return b.String()
}

func (d *Deck) render(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(d.Name)
	b.WriteByte('\n')
	for _, sub := range d.Subdecks {
		sub.render(b, depth+1)
	}
}
