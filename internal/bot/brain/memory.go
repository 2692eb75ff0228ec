// Package brain holds the bot's private view of a match: what cards can
// still be out there and what the opponent's past plays reveal.
package brain

import "kora/internal/domain"

// Flag marks an inferred opponent tendency. Flags persist across games of
// the same match; card knowledge resets every deal.
type Flag string

const (
	// FlagLeadsHigh is set when the opponent opened round 1 with a high
	// value card.
	FlagLeadsHigh Flag = "leads_high"
	// FlagSavesThree is set when the opponent has been seen playing a "3"
	// in the final round, i.e. they hunt the Kora bonus.
	FlagSavesThree Flag = "saves_three"
)

// leadsHighValue is the minimum lead value that trips FlagLeadsHigh.
const leadsHighValue = 8

// Memory is the bot's per-match knowledge store. It is an approximation:
// the remaining-deck estimate cannot distinguish the opponent's hand from
// the undealt stock.
type Memory struct {
	selfID string
	flags  map[Flag]bool
}

// NewMemory creates an empty memory for the given bot player.
func NewMemory(selfID string) *Memory {
	return &Memory{
		selfID: selfID,
		flags:  make(map[Flag]bool),
	}
}

// SelfID returns the player this memory belongs to.
func (m *Memory) SelfID() string { return m.selfID }

// Flagged reports whether a behaviour flag has been inferred.
func (m *Memory) Flagged(f Flag) bool { return m.flags[f] }

// Observe scans the play log for opponent tells. Safe to call repeatedly;
// flags only ever latch on.
func (m *Memory) Observe(g *domain.Game) {
	for _, round := range []int{1, domain.MaxRounds} {
		plays := g.PlaysInRound(round)
		if len(plays) == 0 {
			continue
		}
		if round == 1 {
			lead := plays[0]
			if lead.PlayerID != m.selfID && lead.Card.Rank >= leadsHighValue {
				m.flags[FlagLeadsHigh] = true
			}
			continue
		}
		for _, pc := range plays {
			if pc.PlayerID != m.selfID && pc.Card.Rank == domain.MinRank {
				m.flags[FlagSavesThree] = true
			}
		}
	}
}

// Remaining estimates the deck still unseen by the bot: the full variant
// deck minus every played card minus the bot's own hand. The opponent's
// hand is hidden inside this set.
func (m *Memory) Remaining(g *domain.Game) []domain.Card {
	seen := make(map[string]bool, len(g.Plays)+domain.HandSize)
	for _, pc := range g.Plays {
		seen[pc.Card.ID] = true
	}
	if self := g.PlayerByID(m.selfID); self != nil {
		for _, c := range self.Hand {
			seen[c.ID] = true
		}
	}

	var out []domain.Card
	for _, c := range domain.NewDeck(g.Variant, g.Seed) {
		if !seen[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
