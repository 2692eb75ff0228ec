package bot

import (
	"math/rand"

	"kora/internal/bot/brain"
	"kora/internal/domain"
)

// HeuristicBot is the medium tier: special-case overrides first, then the
// highest-scoring card under the hand-crafted evaluator.
type HeuristicBot struct {
	memory *brain.Memory
	tuning Tuning
	rng    *rand.Rand
}

// NewHeuristicBot creates the medium-tier brain for the given player.
func NewHeuristicBot(selfID string, tn Tuning, rng *rand.Rand) *HeuristicBot {
	return &HeuristicBot{
		memory: brain.NewMemory(selfID),
		tuning: tn,
		rng:    rng,
	}
}

func (b *HeuristicBot) ChooseCard(g *domain.Game, playerID string) (domain.Card, error) {
	p := g.PlayerByID(playerID)
	if p == nil {
		return domain.Card{}, domain.ErrUnknownPlayer
	}
	legal := domain.LegalCards(g, p)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalCard
	}

	ctx := buildTurnContext(g, p, b.memory, b.rng)

	// Overrides come before scoring: a sub-threshold hand locks in its
	// advantage by shedding the highest card, and a likely-lost round
	// sacrifices the lowest.
	if domain.HandSum(p.Hand) < domain.AutoSumThreshold {
		return highestCard(legal), nil
	}
	if ctx.lossLikely {
		return lowestCard(legal), nil
	}

	best := legal[0]
	bestScore := scoreCard(best, ctx, b.tuning, b.rng)
	for _, c := range legal[1:] {
		if s := scoreCard(c, ctx, b.tuning, b.rng); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, nil
}

// scoreFor re-evaluates a single card in the current turn context, used by
// the rollout blend. Jitter is skipped so the comparison is stable.
func (b *HeuristicBot) scoreFor(g *domain.Game, playerID string, c domain.Card) float64 {
	p := g.PlayerByID(playerID)
	if p == nil {
		return 0
	}
	ctx := buildTurnContext(g, p, b.memory, b.rng)
	tn := b.tuning
	tn.Jitter = 0
	return scoreCard(c, ctx, tn, b.rng)
}
