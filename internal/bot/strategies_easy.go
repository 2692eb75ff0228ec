package bot

import (
	"math/rand"

	"kora/internal/domain"
)

// RandomBot is the easy tier: a uniformly random legal card.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot creates the easy-tier brain.
func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

func (b *RandomBot) ChooseCard(g *domain.Game, playerID string) (domain.Card, error) {
	p := g.PlayerByID(playerID)
	if p == nil {
		return domain.Card{}, domain.ErrUnknownPlayer
	}
	legal := domain.LegalCards(g, p)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalCard
	}
	return legal[b.rng.Intn(len(legal))], nil
}
