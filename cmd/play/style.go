package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"kora/internal/domain"
)

// cardLabel renders a card as a short colored string, red suits in red.
func cardLabel(c domain.Card) string {
	var suit string
	switch c.Suit {
	case domain.SuitHearts:
		suit = pterm.LightRed("♥")
	case domain.SuitDiamonds:
		suit = pterm.LightRed("♦")
	case domain.SuitClubs:
		suit = pterm.Black("♣")
	case domain.SuitSpades:
		suit = pterm.Black("♠")
	}
	return fmt.Sprintf("%d%s", c.Rank, suit)
}

// handLine renders a hand on one line, dimming cards that cannot legally
// be played right now.
func handLine(hand []domain.Card) string {
	line := ""
	for _, c := range hand {
		label := cardLabel(c)
		if !c.Playable {
			label = pterm.Gray(label)
		}
		line += label + "  "
	}
	return line
}

// renderTable draws the table from the human player's point of view.
func renderTable(g *domain.Game, humanID string, balances map[string]int64) {
	opp := g.Opponent(humanID)
	self := g.PlayerByID(humanID)

	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)

	oppInfo := pterm.Sprintfln("Cards: %d\nGold: %d", len(opp.Hand), balances[opp.ID])
	oppPanel := pterm.Panel{Data: pbox.WithTitle(opp.ID).WithTitleTopLeft().Sprintf(oppInfo)}

	tableLine := ""
	for _, pc := range g.PlaysInRound(g.CurrentRound) {
		tableLine += pterm.Sprintf("%s played %s   ", pc.PlayerID, cardLabel(pc.Card))
	}
	if tableLine == "" {
		tableLine = pterm.Gray("nothing played yet")
	}
	holder := pterm.Sprintfln("Round %d/%d  |  hand held by %s\n%s", g.CurrentRound, domain.MaxRounds, pterm.LightCyan(g.HasHandID), tableLine)
	tablePanel := pterm.Panel{Data: pbox.WithTitle(pterm.LightYellow("|TABLE|")).WithTitleTopCenter().Sprintf(holder)}

	selfInfo := pterm.Sprintfln("%s\nGold: %d", handLine(self.Hand), balances[self.ID])
	selfPanel := pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen(self.ID)).WithTitleTopLeft().Sprintf(selfInfo)}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{oppPanel},
		{tablePanel},
		{selfPanel},
	}).Render()
}

// victoryBanner describes the terminal verdict in a player-facing line.
func victoryBanner(g *domain.Game, humanID string) string {
	outcome := "wins"
	switch g.VictoryType {
	case domain.VictoryAutoSevens:
		outcome = "wins before a card is played: three sevens"
	case domain.VictoryAutoSum, domain.VictoryAutoLowest:
		outcome = "wins before a card is played: hand under 21"
	case domain.VictorySimpleKora:
		outcome = "wins with a KORA (x1.5)"
	case domain.VictoryDoubleKora:
		outcome = "wins with a DOUBLE KORA (x2)"
	case domain.VictoryTripleKora:
		outcome = "wins with a TRIPLE KORA (x3)"
	}

	line := pterm.Sprintf("%s %s", g.WinnerID, outcome)
	if g.WinnerID == humanID {
		return pterm.LightGreen(line)
	}
	return pterm.LightRed(line)
}
