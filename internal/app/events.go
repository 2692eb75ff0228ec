package app

import "kora/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined  EventKind = "player_joined"
	EventPlayerLeft    EventKind = "player_left"
	EventGameStarted   EventKind = "game_started"
	EventHandDealt     EventKind = "hand_dealt"
	EventCardPlayed    EventKind = "card_played"
	EventRoundResolved EventKind = "round_resolved"
	EventGameEnded     EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID string
	Seat   int
}

type PlayerLeftPayload struct {
	UserID string
}

type GameStartedPayload struct {
	Variant         domain.Variant
	Bet             int64
	HandHolderID    string
	FirstTurnUserID string
}

// HandDealtPayload is always targeted: a player only ever sees their own
// hand.
type HandDealtPayload struct {
	UserID string
	Hand   []domain.Card
}

type CardPlayedPayload struct {
	UserID         string
	Card           domain.Card
	Round          int
	NextTurnUserID string
}

type RoundResolvedPayload struct {
	Round        int
	WinnerID     string
	WinningCard  domain.Card
	HandHolderID string
}

type GameEndedPayload struct {
	WinnerID    string
	VictoryType domain.VictoryType
	Multiplier  float64
}
