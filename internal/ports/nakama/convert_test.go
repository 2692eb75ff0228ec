package nakama

import (
	"fmt"
	"testing"

	"kora/internal/app"
	"kora/internal/domain"
)

func TestErrorCodeMapping(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrInvalidState, "invalid_state"},
		{domain.ErrUnknownPlayer, "unknown_player"},
		{domain.ErrNotYourTurn, "not_your_turn"},
		{domain.ErrCardNotFound, "card_not_found"},
		{domain.ErrIllegalMove, "illegal_move"},
		{domain.ErrDuplicatePlay, "duplicate_play"},
		{domain.ErrInvariantViolation, "invariant_violation"},
		{fmt.Errorf("wrapped: %w", domain.ErrNotYourTurn), "not_your_turn"},
		{fmt.Errorf("something else"), "internal"},
	}

	for _, test := range tests {
		if got := errorCode(test.err); got != test.want {
			t.Errorf("errorCode(%v) = %q, want %q", test.err, got, test.want)
		}
	}
}

func TestEventOpCodeCoversAllKinds(t *testing.T) {
	kinds := []app.EventKind{
		app.EventPlayerJoined,
		app.EventPlayerLeft,
		app.EventGameStarted,
		app.EventHandDealt,
		app.EventCardPlayed,
		app.EventRoundResolved,
		app.EventGameEnded,
	}
	seen := make(map[int64]app.EventKind)
	for _, kind := range kinds {
		op, ok := eventOpCode(kind)
		if !ok {
			t.Errorf("no op code for event kind %q", kind)
			continue
		}
		if prev, dup := seen[op]; dup {
			t.Errorf("op code %d shared by %q and %q", op, prev, kind)
		}
		seen[op] = kind
	}
}
