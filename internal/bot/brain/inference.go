package brain

import (
	"math/rand"

	"kora/internal/domain"
)

// Estimator derives probabilistic signals from memory. Its outputs are
// heuristic hints, never guarantees.
type Estimator struct {
	Memory *Memory
}

// NewEstimator creates a reasoning engine over the given memory.
func NewEstimator(m *Memory) *Estimator {
	return &Estimator{Memory: m}
}

// PredictOpponentCard samples a plausible next opponent card: a
// weight-by-value draw over the remaining cards of the lead suit, falling
// back to the whole remaining deck when that suit is exhausted. Returns
// false when nothing remains to draw from.
func (e *Estimator) PredictOpponentCard(g *domain.Game, leadSuit domain.Suit, haveLead bool, rng *rand.Rand) (domain.Card, bool) {
	remaining := e.Memory.Remaining(g)
	if len(remaining) == 0 {
		return domain.Card{}, false
	}

	pool := remaining
	if haveLead {
		var suited []domain.Card
		for _, c := range remaining {
			if c.Suit == leadSuit {
				suited = append(suited, c)
			}
		}
		if len(suited) > 0 {
			pool = suited
		}
	}

	total := 0
	for _, c := range pool {
		total += c.Rank
	}
	pick := rng.Intn(total)
	for _, c := range pool {
		pick -= c.Rank
		if pick < 0 {
			return c, true
		}
	}
	return pool[len(pool)-1], true
}

// HandLossLikely assesses whether the bot is likely to lose the current
// round: its best card of the relevant suit is compared against the
// highest card of that suit that could still be in the opponent's hand.
func (e *Estimator) HandLossLikely(g *domain.Game, self *domain.Player) bool {
	suit, following := roundSuit(g, self)

	bestOwn := highestOfSuit(self.Hand, suit)
	if bestOwn == 0 {
		// A follower who cannot match the lead suit forfeits the round
		// outright.
		return following
	}

	bestOut := highestOfSuit(e.Memory.Remaining(g), suit)
	return bestOut > bestOwn
}

// roundSuit picks the suit the current round will be contested in: the
// actual lead suit when following, or the suit of the bot's strongest card
// when the bot is about to lead.
func roundSuit(g *domain.Game, self *domain.Player) (domain.Suit, bool) {
	if lead := g.LeadPlay(); lead != nil && lead.PlayerID != self.ID {
		return lead.Card.Suit, true
	}

	best := domain.Card{Rank: -1}
	for _, c := range self.Hand {
		if c.Rank > best.Rank {
			best = c
		}
	}
	return best.Suit, false
}

func highestOfSuit(cards []domain.Card, suit domain.Suit) int {
	best := 0
	for _, c := range cards {
		if c.Suit == suit && c.Rank > best {
			best = c.Rank
		}
	}
	return best
}
