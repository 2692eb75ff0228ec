package domain

// VictoryType labels how a game was won; the external ledger keys its
// payout on this together with the multiplier.
type VictoryType string

const (
	// VictoryNormal is a plain final-round win with no bonus.
	VictoryNormal VictoryType = "normal"
	// VictoryAutoSevens is a pre-deal win on holding three or more sevens.
	VictoryAutoSevens VictoryType = "auto_sevens"
	// VictoryAutoSum is a pre-deal win on a hand value below the threshold.
	VictoryAutoSum VictoryType = "auto_sum"
	// VictoryAutoLowest is a pre-deal win when both hands are below the
	// threshold and the lower sum prevails.
	VictoryAutoLowest VictoryType = "auto_lowest"
	// VictorySimpleKora is a final round won with a "3".
	VictorySimpleKora VictoryType = "simple_kora"
	// VictoryDoubleKora extends the Kora through the last two rounds.
	VictoryDoubleKora VictoryType = "double_kora"
	// VictoryTripleKora extends the Kora through the last three rounds.
	VictoryTripleKora VictoryType = "triple_kora"
)

const (
	// SevenRank is the rank counted for the automatic-sevens victory.
	SevenRank = 7
	// AutoSevensCount is the number of sevens that wins outright.
	AutoSevensCount = 3
	// AutoSumThreshold: a hand summing strictly below this wins at deal time.
	AutoSumThreshold = 21
)

// Verdict is the terminal outcome reported to collaborators.
type Verdict struct {
	WinnerID   string      `json:"winner_id"`
	Type       VictoryType `json:"victory_type"`
	Multiplier float64     `json:"multiplier"`
}

// EvaluateAutoWin checks the pre-deal automatic victories, in rule order:
// three-plus sevens first, then a hand sum below the threshold. Exact ties
// deliberately favour the first-listed player (the game creator); see the
// design notes for the recorded asymmetry.
func EvaluateAutoWin(g *Game) (Verdict, bool) {
	first, second := g.Players[0], g.Players[1]

	s0 := CountRank(first.Hand, SevenRank)
	s1 := CountRank(second.Hand, SevenRank)
	if s0 >= AutoSevensCount || s1 >= AutoSevensCount {
		winner := first
		if s1 > s0 {
			winner = second
		}
		return Verdict{WinnerID: winner.ID, Type: VictoryAutoSevens, Multiplier: 1.0}, true
	}

	v0 := HandSum(first.Hand)
	v1 := HandSum(second.Hand)
	switch {
	case v0 < AutoSumThreshold && v1 < AutoSumThreshold:
		winner := first
		if v1 < v0 {
			winner = second
		}
		return Verdict{WinnerID: winner.ID, Type: VictoryAutoLowest, Multiplier: 1.0}, true
	case v0 < AutoSumThreshold:
		return Verdict{WinnerID: first.ID, Type: VictoryAutoSum, Multiplier: 1.0}, true
	case v1 < AutoSumThreshold:
		return Verdict{WinnerID: second.ID, Type: VictoryAutoSum, Multiplier: 1.0}, true
	}

	return Verdict{}, false
}

// EvaluateFinal produces the verdict for a game whose rounds are complete.
// The final round's winner takes the game; winning it with a "3" triggers
// the Kora bonus, scaled by how many consecutive trailing rounds the same
// player took with a "3".
func EvaluateFinal(g *Game) Verdict {
	last := g.Rounds[len(g.Rounds)-1]
	v := Verdict{WinnerID: last.WinnerID, Type: VictoryNormal, Multiplier: 1.0}

	if last.Round != MaxRounds || last.WinningCard.Rank != MinRank {
		return v
	}

	switch chain := KoraChain(g, last.WinnerID); {
	case chain >= 3:
		v.Type, v.Multiplier = VictoryTripleKora, 3.0
	case chain == 2:
		v.Type, v.Multiplier = VictoryDoubleKora, 2.0
	case chain == 1:
		v.Type, v.Multiplier = VictorySimpleKora, 1.5
	}
	return v
}

// KoraChain walks backward from the final round and counts how many
// consecutive rounds the given player won with a "3".
func KoraChain(g *Game, winnerID string) int {
	byRound := make(map[int]RoundResult, len(g.Rounds))
	for _, r := range g.Rounds {
		byRound[r.Round] = r
	}

	chain := 0
	for round := MaxRounds; round >= 1; round-- {
		r, ok := byRound[round]
		if !ok || r.WinnerID != winnerID || r.WinningCard.Rank != MinRank {
			break
		}
		chain++
	}
	return chain
}

// Finish transitions the game to its terminal state exactly once, setting
// the winner, victory type and multiplier from the verdict.
func Finish(g *Game, v Verdict) {
	g.Status = StatusEnded
	g.WinnerID = v.WinnerID
	g.VictoryType = v.Type
	g.Multiplier = v.Multiplier
	g.TurnID = ""
	UpdatePlayableCards(g)
}
