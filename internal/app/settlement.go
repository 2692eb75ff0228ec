package app

import (
	"errors"

	"kora/internal/domain"
	"kora/internal/ports"
)

// ErrNotEnded is returned when settlement is requested for a live game.
var ErrNotEnded = errors.New("game not ended")

// Settlement is the monetary outcome of a finished game. Both players
// staked the bet up front; the pot pays the winner after the house rake,
// scaled by the victory multiplier. Changes are net of the already-staked
// bet so they can be applied directly to wallets.
type Settlement struct {
	TotalStake int64
	Rake       int64
	Winnings   int64
	Changes    map[string]int64
}

// Settle computes the payout for an ended game at the given rake rate
// (e.g. 0.02 for the standard 2% house fee).
func Settle(g *domain.Game, rakeRate float64) (Settlement, error) {
	if g.Status != domain.StatusEnded || g.WinnerID == "" {
		return Settlement{}, ErrNotEnded
	}

	totalStake := g.Bet * int64(len(g.Players))
	rake := int64(float64(totalStake) * rakeRate)
	winnings := int64(float64(totalStake-rake) * g.Multiplier)

	changes := make(map[string]int64, len(g.Players))
	for _, p := range g.Players {
		if p.ID == g.WinnerID {
			changes[p.ID] = winnings - g.Bet
		} else {
			changes[p.ID] = -g.Bet
		}
	}

	return Settlement{
		TotalStake: totalStake,
		Rake:       rake,
		Winnings:   winnings,
		Changes:    changes,
	}, nil
}

// WalletUpdates converts a settlement into economy port updates, skipping
// the listed bot seats (bots play with house money that is never persisted).
func (s Settlement) WalletUpdates(g *domain.Game, isBot func(userID string) bool) []ports.WalletUpdate {
	updates := make([]ports.WalletUpdate, 0, len(s.Changes))
	for _, p := range g.Players {
		if isBot != nil && isBot(p.ID) {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: p.ID,
			Amount: s.Changes[p.ID],
			Metadata: map[string]interface{}{
				"reason":       "kora_settlement",
				"game_id":      g.ID,
				"victory_type": string(g.VictoryType),
				"multiplier":   g.Multiplier,
			},
		})
	}
	return updates
}
