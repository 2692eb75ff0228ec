// Command play runs a local Kora game against the AI in the terminal.
// It drives the same engine the server uses, which makes it a handy
// harness for trying out strategy changes.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"kora/internal/app"
	"kora/internal/bot"
	"kora/internal/domain"
)

const (
	humanID  = "you"
	botID    = "dealer"
	baseBet  = 100
	bankroll = 1000
	rakeRate = 0.02
)

func main() {
	levelFlag := flag.String("level", "", "AI difficulty: easy, medium or hard")
	variantFlag := flag.String("variant", string(domain.VariantFull31), "deck variant: full31 or compact27")
	flag.Parse()

	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("K", pterm.FgLightYellow.ToStyle()),
		putils.LettersFromStringWithStyle("ora", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	level := bot.Level(*levelFlag)
	if level == "" {
		choice, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText("Pick your opponent").
			WithOptions([]string{string(bot.LevelEasy), string(bot.LevelMedium), string(bot.LevelHard)}).
			Show()
		level = bot.Level(choice)
	}

	variant := domain.Variant(*variantFlag)
	if variant != domain.VariantCompact27 && variant != domain.VariantFull31 {
		pterm.Error.Printfln("unknown variant %q", *variantFlag)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	brain, err := bot.NewBrain(level, botID, rng)
	if err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(1)
	}

	svc := app.NewService(rng)
	balances := map[string]int64{humanID: bankroll, botID: bankroll}

	for round := 1; ; round++ {
		if balances[humanID] < baseBet {
			pterm.Error.Println("You are out of gold.")
			return
		}

		if err := playOne(svc, brain, rng, variant, round, balances); err != nil {
			pterm.Error.Printfln("%v", err)
			os.Exit(1)
		}

		again, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Play another game?").
			WithDefaultValue(true).
			Show()
		if !again {
			return
		}
	}
}

func playOne(svc *app.Service, brain bot.Brain, rng *rand.Rand, variant domain.Variant, gameNo int, balances map[string]int64) error {
	seats := []app.Seat{
		{UserID: humanID, Kind: domain.PlayerHuman},
		{UserID: botID, Kind: domain.PlayerAI},
	}
	seed := fmt.Sprintf("local-%d-%d", gameNo, rng.Int63())

	g, err := svc.CreateGame(fmt.Sprintf("local-%d", gameNo), seats, variant, seed, baseBet)
	if err != nil {
		return err
	}
	if _, err := svc.StartGame(g); err != nil {
		return err
	}

	for g.Status == domain.StatusPlaying {
		renderTable(g, humanID, balances)

		if g.TurnID == humanID {
			if err := humanTurn(svc, g); err != nil {
				return err
			}
			continue
		}

		card, err := brain.ChooseCard(g, botID)
		if err != nil {
			return err
		}
		events, err := svc.PlayCard(g, botID, card.ID)
		if err != nil {
			return err
		}
		pterm.Info.Printfln("%s plays %s", botID, cardLabel(card))
		announceRounds(events)
	}

	settlement, err := app.Settle(g, rakeRate)
	if err != nil {
		return err
	}
	for id, change := range settlement.Changes {
		balances[id] += change
	}

	pterm.Println()
	pterm.DefaultBox.
		WithTitle(pterm.LightYellow("|RESULT|")).
		WithTitleTopCenter().
		Println(victoryBanner(g, humanID) + pterm.Sprintf("\npot %d, rake %d, payout %d", settlement.TotalStake, settlement.Rake, settlement.Winnings))
	pterm.Println()
	return nil
}

func humanTurn(svc *app.Service, g *domain.Game) error {
	self := g.PlayerByID(humanID)
	legal := domain.LegalCards(g, self)

	options := make([]string, len(legal))
	byLabel := make(map[string]domain.Card, len(legal))
	for i, c := range legal {
		label := cardLabel(c)
		options[i] = label
		byLabel[label] = c
	}

	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Your turn").
		WithOptions(options).
		Show()
	if err != nil {
		return err
	}

	events, err := svc.PlayCard(g, humanID, byLabel[choice].ID)
	if err != nil {
		return err
	}
	announceRounds(events)
	return nil
}

func announceRounds(events []app.Event) {
	for _, ev := range events {
		if ev.Kind != app.EventRoundResolved {
			continue
		}
		p := ev.Payload.(app.RoundResolvedPayload)
		pterm.Success.Printfln("Round %d goes to %s with %s", p.Round, p.WinnerID, cardLabel(p.WinningCard))
	}
}
