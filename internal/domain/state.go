package domain

import "time"

// Status represents the lifecycle stage of a Kora game.
type Status string

const (
	// StatusWaiting is the pre-deal state where stakes are locked in.
	StatusWaiting Status = "waiting"
	// StatusPlaying is the active state where cards are played.
	StatusPlaying Status = "playing"
	// StatusEnded is the terminal state; no further mutation is permitted.
	StatusEnded Status = "ended"
)

// Suit identifies one of the four card suits.
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Suits lists all suits in deck-building order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Card is a single playing card. Rank doubles as the card's numeric value.
// Playable is a derived cache; UpdatePlayableCards recomputes it after every
// state change and it is never authoritative.
type Card struct {
	ID       string `json:"id"`
	Suit     Suit   `json:"suit"`
	Rank     int    `json:"rank"`
	Playable bool   `json:"playable"`
}

// PlayerKind distinguishes human seats from AI seats.
type PlayerKind string

const (
	PlayerHuman PlayerKind = "human"
	PlayerAI    PlayerKind = "ai"
)

// Player holds the domain state for one of the two participants.
type Player struct {
	ID      string     `json:"id"`
	Kind    PlayerKind `json:"kind"`
	Hand    []Card     `json:"hand"`
	Balance int64      `json:"balance"`
	// BotLevel is the AI difficulty tier ("easy", "medium", "hard");
	// empty for humans.
	BotLevel string `json:"bot_level,omitempty"`
}

// PlayedCard is an append-only log entry recording a single play.
type PlayedCard struct {
	Card     Card      `json:"card"`
	PlayerID string    `json:"player_id"`
	Round    int       `json:"round"`
	PlayedAt time.Time `json:"played_at"`
}

// RoundResult records the resolution of one completed round.
type RoundResult struct {
	Round       int    `json:"round"`
	WinnerID    string `json:"winner_id"`
	WinningCard Card   `json:"winning_card"`
}

// MaxRounds is the fixed number of rounds in a Kora game, one per card in
// a five-card hand.
const MaxRounds = 5

// HandSize is the number of cards dealt to each player.
const HandSize = 5

// Game captures the authoritative state for a single Kora game.
// Version strictly increases on every mutating operation; it exists for
// the external store's optimistic concurrency and is never consulted by
// the rules themselves.
type Game struct {
	ID           string        `json:"id"`
	Status       Status        `json:"status"`
	Variant      Variant       `json:"variant"`
	Seed         string        `json:"seed"`
	Bet          int64         `json:"bet"`
	CurrentRound int           `json:"current_round"`
	HasHandID    string        `json:"has_hand_id"`
	TurnID       string        `json:"turn_id"`
	Players      []*Player     `json:"players"` // exactly two, creator first
	Plays        []PlayedCard  `json:"plays"`
	Rounds       []RoundResult `json:"rounds"`
	WinnerID     string        `json:"winner_id,omitempty"`
	VictoryType  VictoryType   `json:"victory_type,omitempty"`
	Multiplier   float64       `json:"multiplier,omitempty"`
	Version      int64         `json:"version"`
}

// PlayerByID returns the player with the given id, or nil.
func (g *Game) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Opponent returns the other player relative to the given id, or nil.
func (g *Game) Opponent(id string) *Player {
	for _, p := range g.Players {
		if p.ID != id {
			return p
		}
	}
	return nil
}

// PlaysInRound returns the plays recorded for the given round, in play order.
func (g *Game) PlaysInRound(round int) []PlayedCard {
	var out []PlayedCard
	for _, pc := range g.Plays {
		if pc.Round == round {
			out = append(out, pc)
		}
	}
	return out
}

// LeadPlay returns the first play of the current round, or nil when the
// round has not been opened yet.
func (g *Game) LeadPlay() *PlayedCard {
	plays := g.PlaysInRound(g.CurrentRound)
	if len(plays) == 0 {
		return nil
	}
	return &plays[0]
}

// Clone deep-copies the game for simulation. The clone shares nothing
// mutable with the receiver, so rollouts can play it out freely.
func (g *Game) Clone() *Game {
	out := *g
	out.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		cp := *p
		cp.Hand = append([]Card(nil), p.Hand...)
		out.Players[i] = &cp
	}
	out.Plays = append([]PlayedCard(nil), g.Plays...)
	out.Rounds = append([]RoundResult(nil), g.Rounds...)
	return &out
}

// RemoveCard removes the card with the given id from a hand and returns the
// updated hand along with the removed card.
func RemoveCard(hand []Card, cardID string) ([]Card, Card, bool) {
	for i, c := range hand {
		if c.ID == cardID {
			out := append([]Card(nil), hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, c, true
		}
	}
	return hand, Card{}, false
}

// FindCard returns the card with the given id from a hand.
func FindCard(hand []Card, cardID string) (Card, bool) {
	for _, c := range hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// HandSum returns the total rank value of a hand.
func HandSum(hand []Card) int {
	sum := 0
	for _, c := range hand {
		sum += c.Rank
	}
	return sum
}

// CountRank returns how many cards of the given rank a hand holds.
func CountRank(hand []Card, rank int) int {
	n := 0
	for _, c := range hand {
		if c.Rank == rank {
			n++
		}
	}
	return n
}
