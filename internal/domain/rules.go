package domain

// CanPlayCard reports whether the player may legally play the card right
// now. Rules, in order: the game must be in progress and it must be the
// player's turn; the hand holder leads and may play anything; a follower
// must match the lead suit while able, and may play anything otherwise.
func CanPlayCard(g *Game, p *Player, c Card) bool {
	if g.Status != StatusPlaying {
		return false
	}
	if p == nil || g.TurnID != p.ID {
		return false
	}
	if g.HasHandID == p.ID {
		return true
	}

	lead := g.LeadPlay()
	if lead == nil {
		// Follower cannot act before the leader; CurrentTurn never
		// hands them the turn in this position.
		return false
	}
	if holdsSuit(p.Hand, lead.Card.Suit) {
		return c.Suit == lead.Card.Suit
	}
	return true
}

// LegalCards returns the cards the player may play right now, in hand order.
func LegalCards(g *Game, p *Player) []Card {
	var out []Card
	for _, c := range p.Hand {
		if CanPlayCard(g, p, c) {
			out = append(out, c)
		}
	}
	return out
}

// UpdatePlayableCards recomputes the derived Playable flag on every card of
// every hand. Call it after any state mutation so collaborators can render
// or enumerate legal moves without re-deriving the rule.
func UpdatePlayableCards(g *Game) {
	for _, p := range g.Players {
		for i := range p.Hand {
			p.Hand[i].Playable = CanPlayCard(g, p, p.Hand[i])
		}
	}
}

// CurrentTurn derives whose turn it is from the current round's plays: the
// hand holder opens, the other player follows. With two plays down the
// round is pending resolution and no one holds the turn.
func CurrentTurn(g *Game) (string, bool) {
	plays := g.PlaysInRound(g.CurrentRound)
	switch len(plays) {
	case 0:
		return g.HasHandID, true
	case 1:
		if opp := g.Opponent(plays[0].PlayerID); opp != nil {
			return opp.ID, true
		}
		return "", false
	default:
		return "", false
	}
}

func holdsSuit(hand []Card, s Suit) bool {
	for _, c := range hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}
