package bot

import (
	"errors"

	"kora/internal/domain"
)

// Level is an AI difficulty tier.
type Level string

const (
	// LevelEasy plays a uniformly random legal card.
	LevelEasy Level = "easy"
	// LevelMedium plays the heuristic evaluator's pick.
	LevelMedium Level = "medium"
	// LevelHard layers Monte-Carlo rollouts on top of the heuristic.
	LevelHard Level = "hard"
)

// ErrNoLegalCard is returned when the acting player has no legal card,
// which only happens on a corrupted snapshot or when asked out of turn.
var ErrNoLegalCard = errors.New("no legal card to play")

// Brain is the decision procedure behind a bot difficulty tier. A Brain
// never mutates the game it is given; it only reads the snapshot.
type Brain interface {
	ChooseCard(g *domain.Game, playerID string) (domain.Card, error)
}
