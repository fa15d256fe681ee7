// Package deck implements the fortune and community card piles.
package deck

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/DedS3t/monopoly-engine/app/models"
)

// ErrDeckExhausted means every card has been drawn and none came back. Common
// cards always return, so hitting this is a bug.
var ErrDeckExhausted = errors.New("deck exhausted")

type Deck struct {
	kind models.DeckKind
	pile []models.Card
}

// New shuffles cards into a fresh pile. A nil rng keeps the given order.
func New(kind models.DeckKind, cards []models.Card, rng *rand.Rand) *Deck {
	pile := make([]models.Card, len(cards))
	copy(pile, cards)
	if rng != nil {
		rng.Shuffle(len(pile), func(i, j int) { pile[i], pile[j] = pile[j], pile[i] })
	}
	return &Deck{kind: kind, pile: pile}
}

// Restore rebuilds a pile from card ids, top first.
func Restore(kind models.DeckKind, ids []int) (*Deck, error) {
	pile := make([]models.Card, 0, len(ids))
	for _, id := range ids {
		c, ok := Lookup(id)
		if !ok || c.Deck != kind {
			return nil, fmt.Errorf("restore %s deck: unknown card %d", kind, id)
		}
		pile = append(pile, c)
	}
	return &Deck{kind: kind, pile: pile}, nil
}

// Draw pops the top card. The caller hands it back through Resolve once the
// effect has been applied.
func (d *Deck) Draw() (models.Card, error) {
	if len(d.pile) == 0 {
		return models.Card{}, fmt.Errorf("%s: %w", d.kind, ErrDeckExhausted)
	}
	c := d.pile[0]
	d.pile = d.pile[1:]
	return c, nil
}

// Resolve puts a common card on the bottom of the pile; rare cards are gone for good.
func (d *Deck) Resolve(c models.Card) {
	if c.Rare {
		return
	}
	d.pile = append(d.pile, c)
}

func (d *Deck) Len() int {
	return len(d.pile)
}

// Ids lists the pile top first.
func (d *Deck) Ids() []int {
	ids := make([]int, len(d.pile))
	for i, c := range d.pile {
		ids[i] = c.Id
	}
	return ids
}
