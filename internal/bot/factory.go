package bot

import (
	"fmt"
	"math/rand"
)

// NewBrain creates the decision procedure for a difficulty tier. selfID is
// the player the brain acts for; rng drives every random draw the brain
// makes, so a seeded rng yields reproducible decisions.
func NewBrain(level Level, selfID string, rng *rand.Rand) (Brain, error) {
	switch level {
	case LevelEasy:
		return NewRandomBot(rng), nil
	case LevelMedium:
		return NewHeuristicBot(selfID, DefaultTuning, rng), nil
	case LevelHard:
		return NewRolloutBot(selfID, DefaultTuning, rng), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %q", level)
	}
}
