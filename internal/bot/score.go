package bot

import (
	"math/rand"

	"kora/internal/bot/brain"
	"kora/internal/domain"
)

// turnContext bundles everything the evaluator needs to score one turn's
// candidates. Built once per decision, shared across the candidate cards.
type turnContext struct {
	game       *domain.Game
	self       *domain.Player
	memory     *brain.Memory
	leadSuit   domain.Suit
	haveLead   bool
	predicted  *domain.Card
	holdsHand  bool
	lossLikely bool
}

// buildTurnContext assembles the evaluation context for the acting player:
// actual lead suit when following, predicted lead suit when leading, the
// sampled opponent card and the loss-likelihood assessment.
func buildTurnContext(g *domain.Game, self *domain.Player, mem *brain.Memory, rng *rand.Rand) *turnContext {
	mem.Observe(g)
	est := brain.NewEstimator(mem)

	ctx := &turnContext{
		game:      g,
		self:      self,
		memory:    mem,
		holdsHand: g.HasHandID == self.ID,
	}

	if lead := g.LeadPlay(); lead != nil && lead.PlayerID != self.ID {
		ctx.leadSuit = lead.Card.Suit
		ctx.haveLead = true
	}

	if predicted, ok := est.PredictOpponentCard(g, ctx.leadSuit, ctx.haveLead, rng); ok {
		ctx.predicted = &predicted
		if !ctx.haveLead {
			// Leading: treat the predicted opponent card's suit as the
			// suit the round will be contested in.
			ctx.leadSuit = predicted.Suit
			ctx.haveLead = true
		}
	}

	ctx.lossLikely = est.HandLossLikely(g, self)
	return ctx
}

// scoreCard computes the heuristic value of playing a card in the given
// context:
//
//	base(card, round) * (1 + followSuit + prediction + handOwner + behaviour) + jitter
//
// where base is the rank value, weighted up for "3"s in the rounds where
// the Kora exploit can fire.
func scoreCard(c domain.Card, ctx *turnContext, tn Tuning, rng *rand.Rand) float64 {
	base := float64(c.Rank)
	if c.Rank == domain.MinRank {
		base *= tn.KoraRoundWeight(ctx.game.CurrentRound)
	}

	bonus := tn.OffSuitBonus
	if ctx.haveLead && c.Suit == ctx.leadSuit {
		bonus = tn.FollowSuitBonus
	}
	if ctx.predicted != nil && ctx.predicted.Suit == c.Suit && ctx.predicted.Rank == c.Rank {
		bonus += tn.PredictionBonus
	}
	if ctx.holdsHand {
		bonus += tn.HandOwnerBonus
	}
	if ctx.memory.Flagged(brain.FlagSavesThree) && c.Rank == domain.MinRank {
		bonus += tn.CounterKoraBonus
	}
	if ctx.lossLikely && c.Rank != domain.MinRank {
		bonus += tn.LosingRoundPenalty
	}

	return base*(1+bonus) + rng.Float64()*tn.Jitter
}

func highestCard(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > best.Rank {
			best = c
		}
	}
	return best
}

func lowestCard(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < best.Rank {
			best = c
		}
	}
	return best
}
