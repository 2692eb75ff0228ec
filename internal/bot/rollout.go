package bot

import (
	"math/rand"
	"sync"

	"kora/internal/domain"
)

// RolloutBot is the hard tier. From the mid-game onward it estimates each
// candidate's win probability with flat Monte-Carlo playouts on disposable
// clones, then keeps the rollout winner only when the heuristic does not
// strongly disagree. There is no tree: the blend with the heuristic
// assumes flat, noisy estimates.
type RolloutBot struct {
	heuristic *HeuristicBot
	tuning    Tuning
	rng       *rand.Rand
}

// NewRolloutBot creates the hard-tier brain for the given player.
func NewRolloutBot(selfID string, tn Tuning, rng *rand.Rand) *RolloutBot {
	return &RolloutBot{
		heuristic: NewHeuristicBot(selfID, tn, rng),
		tuning:    tn,
		rng:       rng,
	}
}

func (b *RolloutBot) ChooseCard(g *domain.Game, playerID string) (domain.Card, error) {
	pick, err := b.heuristic.ChooseCard(g, playerID)
	if err != nil {
		return domain.Card{}, err
	}
	if g.CurrentRound < b.tuning.RolloutMinRound {
		return pick, nil
	}

	legal := domain.LegalCards(g, g.PlayerByID(playerID))
	if len(legal) < 2 {
		return pick, nil
	}

	rates := b.winRates(g, playerID, legal)
	best := 0
	for i := range rates {
		if rates[i] > rates[best] {
			best = i
		}
	}
	candidate := legal[best]

	// Safety blend: a noisy rollout estimate may not override a clearly
	// strong heuristic move. Both sides are compared in heuristic-score
	// units, which the raw win rate is not.
	heurScore := b.heuristic.scoreFor(g, playerID, pick)
	candScore := b.heuristic.scoreFor(g, playerID, candidate)
	if candScore >= b.tuning.BlendThreshold*heurScore {
		return candidate, nil
	}
	return pick, nil
}

// winRates runs the playout batch for every candidate. Candidates run on
// their own goroutines over independent clones; seeds are drawn up front
// from the bot's rng so aggregation per candidate is deterministic for a
// fixed rng state.
func (b *RolloutBot) winRates(g *domain.Game, selfID string, candidates []domain.Card) []float64 {
	rates := make([]float64, len(candidates))
	seeds := make([]int64, len(candidates))
	for i := range seeds {
		seeds[i] = b.rng.Int63()
	}

	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c domain.Card) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seeds[i]))
			wins := 0
			for n := 0; n < b.tuning.RolloutIterations; n++ {
				if b.playout(g, selfID, c, rng) {
					wins++
				}
			}
			rates[i] = float64(wins) / float64(b.tuning.RolloutIterations)
		}(i, c)
	}
	wg.Wait()
	return rates
}

// playout clones the game, commits the candidate, then finishes the match
// with both sides uniformly random over their legal cards. Legality in the
// simulation is the engine's own predicate, so suit-following holds
// exactly as in live play. Reports whether the bot won the playout.
func (b *RolloutBot) playout(g *domain.Game, selfID string, candidate domain.Card, rng *rand.Rand) bool {
	sim := g.Clone()
	if err := domain.PlayCard(sim, selfID, candidate.ID); err != nil {
		return false
	}

	for sim.Status == domain.StatusPlaying {
		p := sim.PlayerByID(sim.TurnID)
		legal := domain.LegalCards(sim, p)
		if len(legal) == 0 {
			return false
		}
		pick := legal[rng.Intn(len(legal))]
		if err := domain.PlayCard(sim, p.ID, pick.ID); err != nil {
			return false
		}
	}
	return sim.WinnerID == selfID
}
