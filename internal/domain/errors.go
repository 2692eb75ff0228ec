package domain

import "errors"

var (
	// ErrInvalidState is returned for actions attempted on a game that is
	// not in the required lifecycle state.
	ErrInvalidState = errors.New("game not in a valid state for this action")
	// ErrUnknownPlayer is returned when the acting player is not part of
	// the game.
	ErrUnknownPlayer = errors.New("player not part of this game")
	// ErrNotYourTurn is returned when a player acts out of turn.
	ErrNotYourTurn = errors.New("not this player's turn")
	// ErrCardNotFound is returned when the card id is absent from the
	// acting player's hand.
	ErrCardNotFound = errors.New("card not in player's hand")
	// ErrIllegalMove is returned when the legality predicate rejects the
	// card (must follow the lead suit while able).
	ErrIllegalMove = errors.New("card violates follow-suit rule")
	// ErrDuplicatePlay is returned when the player already has a card
	// recorded for the current round.
	ErrDuplicatePlay = errors.New("player already played this round")
	// ErrInvariantViolation signals a corrupted snapshot (e.g. more than
	// two plays recorded for one round). It indicates upstream data
	// corruption, not a rejectable player action.
	ErrInvariantViolation = errors.New("game state invariant violated")
)
