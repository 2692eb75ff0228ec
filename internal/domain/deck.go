package domain

import (
	"fmt"
	"math/rand"
)

// Variant selects one of the two historical Kora deck rulesets.
type Variant string

const (
	// VariantCompact27 uses ranks 3..9 with the nine of spades removed
	// (27 cards).
	VariantCompact27 Variant = "compact27"
	// VariantFull31 uses ranks 3..10 with the ten of spades removed
	// (31 cards). This is the canonical production ruleset.
	VariantFull31 Variant = "full31"
)

// MaxRank returns the highest rank in the variant's deck.
func (v Variant) MaxRank() int {
	if v == VariantCompact27 {
		return 9
	}
	return 10
}

// MinRank is the lowest rank in every variant; the "3" is the Kora card.
const MinRank = 3

// excluded returns the single (suit, rank) combination the variant removes
// from the deck.
func (v Variant) excluded() (Suit, int) {
	return SuitSpades, v.MaxRank()
}

// Size returns the number of cards in the variant's deck.
func (v Variant) Size() int {
	return (v.MaxRank()-MinRank+1)*len(Suits) - 1
}

// NewDeck builds the full deck for the variant in suit/rank order. The seed
// only tags card identifiers for reproducibility; it never influences card
// ordering.
func NewDeck(variant Variant, seed string) []Card {
	exSuit, exRank := variant.excluded()
	deck := make([]Card, 0, variant.Size())
	for _, s := range Suits {
		for r := MinRank; r <= variant.MaxRank(); r++ {
			if s == exSuit && r == exRank {
				continue
			}
			deck = append(deck, Card{
				ID:   CardID(s, r, seed),
				Suit: s,
				Rank: r,
			})
		}
	}
	return deck
}

// CardID derives the stable identifier for a card dealt under a seed.
func CardID(s Suit, rank int, seed string) string {
	if seed == "" {
		return fmt.Sprintf("%s-%d", s, rank)
	}
	return fmt.Sprintf("%s-%d-%s", s, rank, seed)
}

// Shuffle permutes the deck in place using the supplied rng.
func Shuffle(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// Deal splits off the two five-card hands. The remainder is the stock,
// which is never drawn from in this fixed-hand game.
func Deal(deck []Card) (first, second, stock []Card) {
	first = append([]Card(nil), deck[:HandSize]...)
	second = append([]Card(nil), deck[HandSize:2*HandSize]...)
	stock = append([]Card(nil), deck[2*HandSize:]...)
	return first, second, stock
}
