package bot

import (
	"math/rand"
	"time"

	"kora/internal/domain"
)

// Agent is an autonomous bot seat: an identity plus the Brain for its
// difficulty tier.
type Agent struct {
	ID       string
	Name     string
	Level    Level
	Strategy Brain
}

// NewAgent builds an agent for a provisioned bot user id, using the
// difficulty from its identity (medium when the pool carries none).
func NewAgent(userID string) (*Agent, error) {
	level := LevelMedium
	name := userID
	if identity, ok := GetBotConfig(userID); ok {
		if identity.Difficulty != "" {
			level = Level(identity.Difficulty)
		}
		if identity.DisplayName != "" {
			name = identity.DisplayName
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	strategy, err := NewBrain(level, userID, rng)
	if err != nil {
		return nil, err
	}

	return &Agent{
		ID:       userID,
		Name:     name,
		Level:    level,
		Strategy: strategy,
	}, nil
}

// Play asks the agent for its move on the current snapshot.
func (a *Agent) Play(g *domain.Game) (domain.Card, error) {
	return a.Strategy.ChooseCard(g, a.ID)
}
