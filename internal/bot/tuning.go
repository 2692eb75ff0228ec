package bot

// Tuning collects the weights behind the heuristic evaluator and the
// rollout search. One struct so alternative profiles can be tried without
// touching strategy code.
type Tuning struct {
	// FollowSuitBonus applies when the card matches the actual or
	// predicted lead suit; OffSuitBonus applies otherwise.
	FollowSuitBonus float64
	OffSuitBonus    float64
	// PredictionBonus applies when the card exactly matches the predicted
	// opponent card.
	PredictionBonus float64
	// HandOwnerBonus applies while the bot holds the round initiative.
	HandOwnerBonus float64
	// CounterKoraBonus rewards holding back "3"s against an opponent who
	// saves theirs for the final round.
	CounterKoraBonus float64
	// LosingRoundPenalty pushes the bot toward sacrificing low cards when
	// the round is assessed as a likely loss; applied to non-"3"s.
	LosingRoundPenalty float64
	// Jitter is the magnitude of the random tie-break noise.
	Jitter float64

	// Kora round weights multiply a "3"'s base value in the late rounds
	// where the exploit can fire.
	KoraWeightRound5 float64
	KoraWeightRound4 float64
	KoraWeightRound3 float64

	// RolloutIterations is the number of playouts per candidate card.
	RolloutIterations int
	// RolloutMinRound is the first round the rollout search activates.
	RolloutMinRound int
	// BlendThreshold guards the heuristic pick: the rollout winner must
	// score at least this fraction of the heuristic pick's own score.
	BlendThreshold float64
}

// KoraRoundWeight returns the exploit weighting for a "3" in the given round.
func (t Tuning) KoraRoundWeight(round int) float64 {
	switch round {
	case 5:
		return t.KoraWeightRound5
	case 4:
		return t.KoraWeightRound4
	case 3:
		return t.KoraWeightRound3
	default:
		return 1.0
	}
}

// DefaultTuning is the production profile.
var DefaultTuning = Tuning{
	FollowSuitBonus:    1.0,
	OffSuitBonus:       0.2,
	PredictionBonus:    0.5,
	HandOwnerBonus:     0.3,
	CounterKoraBonus:   0.4,
	LosingRoundPenalty: -1.0,
	Jitter:             0.01,

	KoraWeightRound5: 3.0,
	KoraWeightRound4: 2.0,
	KoraWeightRound3: 1.5,

	RolloutIterations: 200,
	RolloutMinRound:   3,
	BlendThreshold:    0.9,
}
