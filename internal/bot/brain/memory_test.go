package brain

import (
	"math/rand"
	"testing"

	"kora/internal/domain"
)

func card(s domain.Suit, rank int) domain.Card {
	return domain.Card{ID: domain.CardID(s, rank, ""), Suit: s, Rank: rank}
}

func twoPlayerGame(selfHand []domain.Card) *domain.Game {
	return &domain.Game{
		ID:           "g1",
		Status:       domain.StatusPlaying,
		Variant:      domain.VariantFull31,
		CurrentRound: 1,
		Players: []*domain.Player{
			{ID: "opponent", Kind: domain.PlayerHuman},
			{ID: "self", Kind: domain.PlayerAI, Hand: selfHand},
		},
		HasHandID: "opponent",
		TurnID:    "opponent",
	}
}

func TestObserveLeadsHigh(t *testing.T) {
	t.Run("high opponent lead trips the flag", func(t *testing.T) {
		g := twoPlayerGame(nil)
		g.Plays = []domain.PlayedCard{{Card: card(domain.SuitHearts, 9), PlayerID: "opponent", Round: 1}}

		m := NewMemory("self")
		m.Observe(g)
		if !m.Flagged(FlagLeadsHigh) {
			t.Error("rank 9 lead in round 1 must set leads_high")
		}
	})

	t.Run("low lead does not", func(t *testing.T) {
		g := twoPlayerGame(nil)
		g.Plays = []domain.PlayedCard{{Card: card(domain.SuitHearts, 5), PlayerID: "opponent", Round: 1}}

		m := NewMemory("self")
		m.Observe(g)
		if m.Flagged(FlagLeadsHigh) {
			t.Error("rank 5 lead must not set leads_high")
		}
	})

	t.Run("own lead does not", func(t *testing.T) {
		g := twoPlayerGame(nil)
		g.Plays = []domain.PlayedCard{{Card: card(domain.SuitHearts, 10), PlayerID: "self", Round: 1}}

		m := NewMemory("self")
		m.Observe(g)
		if m.Flagged(FlagLeadsHigh) {
			t.Error("the bot's own lead must not set leads_high")
		}
	})
}

func TestObserveSavesThree(t *testing.T) {
	g := twoPlayerGame(nil)
	g.CurrentRound = domain.MaxRounds
	g.Plays = []domain.PlayedCard{
		{Card: card(domain.SuitClubs, 3), PlayerID: "opponent", Round: domain.MaxRounds},
	}

	m := NewMemory("self")
	m.Observe(g)
	if !m.Flagged(FlagSavesThree) {
		t.Error("opponent playing a 3 in the final round must set saves_three")
	}

	// Flags latch: observing a later snapshot without the tell keeps it.
	m.Observe(twoPlayerGame(nil))
	if !m.Flagged(FlagSavesThree) {
		t.Error("flags must persist once set")
	}
}

func TestRemaining(t *testing.T) {
	selfHand := []domain.Card{
		card(domain.SuitHearts, 3),
		card(domain.SuitHearts, 4),
		card(domain.SuitClubs, 5),
		card(domain.SuitClubs, 6),
		card(domain.SuitDiamonds, 7),
	}
	g := twoPlayerGame(selfHand)
	g.Plays = []domain.PlayedCard{
		{Card: card(domain.SuitSpades, 8), PlayerID: "opponent", Round: 1},
		{Card: card(domain.SuitDiamonds, 9), PlayerID: "opponent", Round: 2},
	}

	m := NewMemory("self")
	remaining := m.Remaining(g)

	if want := g.Variant.Size() - len(selfHand) - len(g.Plays); len(remaining) != want {
		t.Fatalf("remaining = %d cards, want %d", len(remaining), want)
	}
	seen := map[string]bool{}
	for _, c := range selfHand {
		seen[c.ID] = true
	}
	for _, pc := range g.Plays {
		seen[pc.Card.ID] = true
	}
	for _, c := range remaining {
		if seen[c.ID] {
			t.Errorf("card %s is known and must not be in the remaining estimate", c.ID)
		}
	}
}

func TestPredictOpponentCardPrefersLeadSuit(t *testing.T) {
	g := twoPlayerGame([]domain.Card{card(domain.SuitClubs, 9)})
	m := NewMemory("self")
	est := NewEstimator(m)
	rng := rand.New(rand.NewSource(13))

	for i := 0; i < 50; i++ {
		c, ok := est.PredictOpponentCard(g, domain.SuitHearts, true, rng)
		if !ok {
			t.Fatal("prediction must succeed with a near-full deck out")
		}
		if c.Suit != domain.SuitHearts {
			t.Fatalf("with hearts led and hearts remaining, prediction must be a heart, got %s", c.ID)
		}
	}
}

func TestHandLossLikely(t *testing.T) {
	t.Run("follower without the lead suit", func(t *testing.T) {
		selfHand := []domain.Card{card(domain.SuitClubs, 9), card(domain.SuitClubs, 10)}
		g := twoPlayerGame(selfHand)
		g.Plays = []domain.PlayedCard{{Card: card(domain.SuitHearts, 4), PlayerID: "opponent", Round: 1}}

		est := NewEstimator(NewMemory("self"))
		if !est.HandLossLikely(g, g.Players[1]) {
			t.Error("a follower who cannot match the lead suit forfeits the round")
		}
	})

	t.Run("follower holding the top card", func(t *testing.T) {
		selfHand := []domain.Card{card(domain.SuitHearts, 10)}
		g := twoPlayerGame(selfHand)
		g.Plays = []domain.PlayedCard{{Card: card(domain.SuitHearts, 4), PlayerID: "opponent", Round: 1}}

		est := NewEstimator(NewMemory("self"))
		if est.HandLossLikely(g, g.Players[1]) {
			t.Error("holding the highest heart still out, the round is not lost")
		}
	})

	t.Run("follower outranked by the unseen cards", func(t *testing.T) {
		selfHand := []domain.Card{card(domain.SuitHearts, 5)}
		g := twoPlayerGame(selfHand)
		g.Plays = []domain.PlayedCard{{Card: card(domain.SuitHearts, 4), PlayerID: "opponent", Round: 1}}

		est := NewEstimator(NewMemory("self"))
		if !est.HandLossLikely(g, g.Players[1]) {
			t.Error("with the 6..10 of hearts unseen, a 5 reads as losing")
		}
	})
}
