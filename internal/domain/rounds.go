package domain

import "time"

// PlayCard validates and applies a single play. The whole mutation is
// atomic: every check runs before the first write, so a rejected play
// leaves the game untouched. On the round's second card the round is
// resolved, the hand transfers to the winner and either the next round
// opens or the game ends with its final verdict.
func PlayCard(g *Game, playerID, cardID string) error {
	if g.Status != StatusPlaying {
		return ErrInvalidState
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if g.TurnID != playerID {
		return ErrNotYourTurn
	}

	plays := g.PlaysInRound(g.CurrentRound)
	if len(plays) > 2 {
		return ErrInvariantViolation
	}
	for _, pc := range plays {
		if pc.PlayerID == playerID {
			return ErrDuplicatePlay
		}
	}

	card, ok := FindCard(p.Hand, cardID)
	if !ok {
		return ErrCardNotFound
	}
	if !CanPlayCard(g, p, card) {
		return ErrIllegalMove
	}

	hand, card, _ := RemoveCard(p.Hand, cardID)
	p.Hand = hand
	card.Playable = false
	g.Plays = append(g.Plays, PlayedCard{
		Card:     card,
		PlayerID: playerID,
		Round:    g.CurrentRound,
		PlayedAt: time.Now().UTC(),
	})

	if plays := g.PlaysInRound(g.CurrentRound); len(plays) == 2 {
		winnerID := ResolveRound(plays[0], plays[1], g.HasHandID)
		winning := plays[0]
		if plays[1].PlayerID == winnerID {
			winning = plays[1]
		}
		g.Rounds = append(g.Rounds, RoundResult{
			Round:       g.CurrentRound,
			WinnerID:    winnerID,
			WinningCard: winning.Card,
		})
		g.HasHandID = winnerID

		if g.CurrentRound == MaxRounds || anyHandEmpty(g) {
			Finish(g, EvaluateFinal(g))
			g.Version++
			return nil
		}
		g.CurrentRound++
	}

	g.TurnID, _ = CurrentTurn(g)
	UpdatePlayableCards(g)
	g.Version++
	return nil
}

// ResolveRound decides a completed round. Matching suits compare by rank
// (ties cannot occur, a suit holds no duplicate ranks); mismatched suits
// forfeit the round to the leader regardless of value.
func ResolveRound(first, second PlayedCard, hasHandID string) string {
	if first.Card.Suit == second.Card.Suit {
		if first.Card.Rank > second.Card.Rank {
			return first.PlayerID
		}
		return second.PlayerID
	}
	return hasHandID
}

func anyHandEmpty(g *Game) bool {
	for _, p := range g.Players {
		if len(p.Hand) == 0 {
			return true
		}
	}
	return false
}
