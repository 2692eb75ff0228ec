package app

import (
	"errors"
	"math/rand"
	"time"

	"kora/internal/domain"
)

// Service contains Kora use-cases operating on domain state. It owns the
// shuffle rng; everything else is deterministic over the game value.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotWaiting = errors.New("game not in waiting state")
	ErrSeatCount  = errors.New("kora requires exactly two seats")
)

// Seat describes one participant when creating a game.
type Seat struct {
	UserID   string
	Kind     domain.PlayerKind
	BotLevel string
}

// CreateGame builds a new game in the waiting state with stakes locked in.
// The first seat is the creator; ties on automatic victories resolve in
// their favour.
func (s *Service) CreateGame(id string, seats []Seat, variant domain.Variant, seed string, bet int64) (*domain.Game, error) {
	if len(seats) != 2 {
		return nil, ErrSeatCount
	}

	players := make([]*domain.Player, len(seats))
	for i, seat := range seats {
		players[i] = &domain.Player{
			ID:       seat.UserID,
			Kind:     seat.Kind,
			BotLevel: seat.BotLevel,
		}
	}

	return &domain.Game{
		ID:      id,
		Status:  domain.StatusWaiting,
		Variant: variant,
		Seed:    seed,
		Bet:     bet,
		Players: players,
		Version: 1,
	}, nil
}

// StartGame shuffles, deals and opens play. When a dealt hand triggers an
// automatic victory the game ends before a single card is played and the
// returned events include the terminal one.
func (s *Service) StartGame(g *domain.Game) ([]Event, error) {
	if g.Status != domain.StatusWaiting {
		return nil, ErrNotWaiting
	}

	deck := domain.NewDeck(g.Variant, g.Seed)
	domain.Shuffle(deck, s.rng)
	first, second, _ := domain.Deal(deck)
	g.Players[0].Hand = first
	g.Players[1].Hand = second

	events := make([]Event, 0, 4)
	for _, p := range g.Players {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: p.ID, Hand: p.Hand},
			Recipients: []string{p.ID},
		})
	}

	if verdict, ok := domain.EvaluateAutoWin(g); ok {
		domain.Finish(g, verdict)
		g.Version++
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				WinnerID:    g.WinnerID,
				VictoryType: g.VictoryType,
				Multiplier:  g.Multiplier,
			},
		})
		return events, nil
	}

	g.Status = domain.StatusPlaying
	g.CurrentRound = 1
	g.HasHandID = g.Players[0].ID
	g.TurnID = g.HasHandID
	domain.UpdatePlayableCards(g)
	g.Version++

	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			Variant:         g.Variant,
			Bet:             g.Bet,
			HandHolderID:    g.HasHandID,
			FirstTurnUserID: g.TurnID,
		},
	})
	return events, nil
}

// PlayCard validates and applies a single play, emitting the resulting
// events: the play itself, the round resolution when the play closed a
// round, and the terminal event when it ended the game.
func (s *Service) PlayCard(g *domain.Game, userID, cardID string) ([]Event, error) {
	roundsBefore := len(g.Rounds)
	playedRound := g.CurrentRound

	if err := domain.PlayCard(g, userID, cardID); err != nil {
		return nil, err
	}

	played := g.Plays[len(g.Plays)-1]
	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			UserID:         userID,
			Card:           played.Card,
			Round:          playedRound,
			NextTurnUserID: g.TurnID,
		},
	}}

	if len(g.Rounds) > roundsBefore {
		result := g.Rounds[len(g.Rounds)-1]
		events = append(events, Event{
			Kind: EventRoundResolved,
			Payload: RoundResolvedPayload{
				Round:        result.Round,
				WinnerID:     result.WinnerID,
				WinningCard:  result.WinningCard,
				HandHolderID: g.HasHandID,
			},
		})
	}

	if g.Status == domain.StatusEnded {
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				WinnerID:    g.WinnerID,
				VictoryType: g.VictoryType,
				Multiplier:  g.Multiplier,
			},
		})
	}

	return events, nil
}
