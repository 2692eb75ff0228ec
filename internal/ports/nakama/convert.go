package nakama

import (
	"encoding/json"
	"errors"
	"fmt"

	"kora/internal/app"
	"kora/internal/domain"
)

// Wire DTOs. Messages are JSON; the op code carries the type.

type CardDTO struct {
	ID       string `json:"id"`
	Suit     string `json:"suit"`
	Rank     int    `json:"rank"`
	Playable bool   `json:"playable"`
}

type StartGameRequest struct {
	Tier string `json:"tier,omitempty"`
}

type PlayCardRequest struct {
	CardID string `json:"card_id"`
}

type RematchRequest struct{}

type PlayerStateDTO struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	DisplayName string `json:"display_name"`
	IsBot       bool   `json:"is_bot"`
	CardsLeft   int    `json:"cards_left"`
}

type PlayerJoinedEvent struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
}

type PlayerLeftEvent struct {
	UserID string `json:"user_id"`
}

type MatchSnapshotEvent struct {
	Seats   []string         `json:"seats"`
	State   string           `json:"state"`
	Players []PlayerStateDTO `json:"players"`
}

type GameStartedEvent struct {
	Variant         string `json:"variant"`
	Bet             int64  `json:"bet"`
	HandHolderID    string `json:"hand_holder_id"`
	FirstTurnUserID string `json:"first_turn_user_id"`
}

type HandDealtEvent struct {
	Hand []CardDTO `json:"hand"`
}

type CardPlayedEvent struct {
	UserID         string  `json:"user_id"`
	Card           CardDTO `json:"card"`
	Round          int     `json:"round"`
	NextTurnUserID string  `json:"next_turn_user_id"`
}

type RoundResolvedEvent struct {
	Round        int     `json:"round"`
	WinnerID     string  `json:"winner_id"`
	WinningCard  CardDTO `json:"winning_card"`
	HandHolderID string  `json:"hand_holder_id"`
}

type GameEndedEvent struct {
	WinnerID       string           `json:"winner_id"`
	VictoryType    string           `json:"victory_type"`
	Multiplier     float64          `json:"multiplier"`
	TotalStake     int64            `json:"total_stake"`
	Rake           int64            `json:"rake"`
	Winnings       int64            `json:"winnings"`
	BalanceChanges map[string]int64 `json:"balance_changes"`
	Receipt        string           `json:"receipt,omitempty"`
}

type GameErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toCardDTO(c domain.Card) CardDTO {
	return CardDTO{ID: c.ID, Suit: string(c.Suit), Rank: c.Rank, Playable: c.Playable}
}

func toCardDTOs(cards []domain.Card) []CardDTO {
	out := make([]CardDTO, len(cards))
	for i, c := range cards {
		out[i] = toCardDTO(c)
	}
	return out
}

// eventOpCode maps an app event kind to its wire op code.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventCardPlayed:
		return OpCardPlayed, true
	case app.EventRoundResolved:
		return OpRoundResolved, true
	case app.EventGameEnded:
		return OpGameEnded, true
	case app.EventPlayerJoined:
		return OpPlayerJoined, true
	case app.EventPlayerLeft:
		return OpPlayerLeft, true
	default:
		return 0, false
	}
}

// eventWirePayload converts an app event payload into its wire DTO.
// EventGameEnded is handled separately by the match handler because its
// wire form carries the settlement.
func eventWirePayload(ev app.Event) (any, error) {
	switch p := ev.Payload.(type) {
	case app.PlayerJoinedPayload:
		return PlayerJoinedEvent{UserID: p.UserID, Seat: p.Seat}, nil
	case app.PlayerLeftPayload:
		return PlayerLeftEvent{UserID: p.UserID}, nil
	case app.GameStartedPayload:
		return GameStartedEvent{
			Variant:         string(p.Variant),
			Bet:             p.Bet,
			HandHolderID:    p.HandHolderID,
			FirstTurnUserID: p.FirstTurnUserID,
		}, nil
	case app.HandDealtPayload:
		return HandDealtEvent{Hand: toCardDTOs(p.Hand)}, nil
	case app.CardPlayedPayload:
		return CardPlayedEvent{
			UserID:         p.UserID,
			Card:           toCardDTO(p.Card),
			Round:          p.Round,
			NextTurnUserID: p.NextTurnUserID,
		}, nil
	case app.RoundResolvedPayload:
		return RoundResolvedEvent{
			Round:        p.Round,
			WinnerID:     p.WinnerID,
			WinningCard:  toCardDTO(p.WinningCard),
			HandHolderID: p.HandHolderID,
		}, nil
	default:
		return nil, fmt.Errorf("no wire form for event kind %q", ev.Kind)
	}
}

func marshalEvent(payload any) ([]byte, error) {
	return json.Marshal(payload)
}

// errorCode maps domain errors onto stable wire codes so clients can react
// without string-matching messages.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrUnknownPlayer):
		return "unknown_player"
	case errors.Is(err, domain.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, domain.ErrCardNotFound):
		return "card_not_found"
	case errors.Is(err, domain.ErrIllegalMove):
		return "illegal_move"
	case errors.Is(err, domain.ErrDuplicatePlay):
		return "duplicate_play"
	case errors.Is(err, domain.ErrInvariantViolation):
		return "invariant_violation"
	default:
		return "internal"
	}
}
