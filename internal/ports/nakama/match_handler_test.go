package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"kora/internal/app"
	"kora/internal/bot"
	"kora/internal/domain"
	"kora/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy
// the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
	lastRecipients []runtime.Presence
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	md.lastRecipients = presences
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

type mockEconomy struct {
	balances map[string]int64
	updates  []ports.WalletUpdate
}

func (me *mockEconomy) GetBalance(ctx context.Context, userID string) (int64, error) {
	if balance, ok := me.balances[userID]; ok {
		return balance, nil
	}
	return 0, errors.New("balance not found")
}

func (me *mockEconomy) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	me.updates = append(me.updates, updates...)
	return nil
}

type mockPresence struct {
	userID   string
	username string
}

func (p *mockPresence) GetUserId() string                  { return p.userID }
func (p *mockPresence) GetSessionId() string               { return "session-" + p.userID }
func (p *mockPresence) GetNodeId() string                  { return "node" }
func (p *mockPresence) GetHidden() bool                    { return false }
func (p *mockPresence) GetPersistence() bool               { return true }
func (p *mockPresence) GetUsername() string                { return p.username }
func (p *mockPresence) GetStatus() string                  { return "" }
func (p *mockPresence) GetReason() runtime.PresenceReason  { return runtime.PresenceReasonUnknown }

// mockMatchData is a client message as the match loop receives it.
type mockMatchData struct {
	mockPresence
	opCode int64
	data   []byte
}

func (m *mockMatchData) GetOpCode() int64      { return m.opCode }
func (m *mockMatchData) GetData() []byte       { return m.data }
func (m *mockMatchData) GetReliable() bool     { return true }
func (m *mockMatchData) GetReceiveTime() int64 { return 0 }

func init() {
	// Load bot identities for testing.
	if err := bot.LoadIdentities("test_bot_identities.json"); err != nil {
		panic("Failed to load bot identities for tests: " + err.Error())
	}
}

func testCard(s domain.Suit, rank int) domain.Card {
	return domain.Card{ID: domain.CardID(s, rank, ""), Suit: s, Rank: rank}
}

// playingState builds a match state with a live game, user-1 to act.
func playingState(economy ports.EconomyPort) *MatchState {
	game := &domain.Game{
		ID:           "m1-1",
		Status:       domain.StatusPlaying,
		Variant:      domain.VariantFull31,
		Bet:          100,
		CurrentRound: 1,
		Players: []*domain.Player{
			{ID: "user-1", Kind: domain.PlayerHuman, Hand: []domain.Card{
				testCard(domain.SuitHearts, 9),
				testCard(domain.SuitClubs, 8),
				testCard(domain.SuitDiamonds, 7),
			}},
			{ID: "user-2", Kind: domain.PlayerHuman, Hand: []domain.Card{
				testCard(domain.SuitHearts, 10),
				testCard(domain.SuitClubs, 4),
				testCard(domain.SuitSpades, 9),
			}},
		},
		HasHandID: "user-1",
		TurnID:    "user-1",
	}
	domain.UpdatePlayableCards(game)

	return &MatchState{
		Seats: [app.SeatsPerGame]string{"user-1", "user-2"},
		Presences: map[string]runtime.Presence{
			"user-1": &mockPresence{userID: "user-1"},
			"user-2": &mockPresence{userID: "user-2"},
		},
		App:          app.NewService(nil),
		Game:         game,
		RematchVotes: make(map[string]bool),
		Bots:         make(map[string]*bot.Agent),
		Economy:      economy,
	}
}

func TestShouldTerminateNoHumans(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  bool
	}{
		{name: "BotsOnly", seats: []string{bot1, bot2}, want: true},
		{name: "BotAndEmpty", seats: []string{bot1, ""}, want: true},
		{name: "HumanPresent", seats: []string{bot1, "user-1"}, want: false},
		{name: "AllEmpty", seats: []string{"", ""}, want: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := shouldTerminateNoHumans(test.seats); got != test.want {
				t.Fatalf("shouldTerminateNoHumans() = %t, want %t", got, test.want)
			}
		})
	}
}

func TestMatchLabelMarshal(t *testing.T) {
	tests := []struct {
		name     string
		label    MatchLabel
		expected string
	}{
		{
			name:     "LobbyState",
			label:    MatchLabel{Open: 1, Game: "kora", State: "lobby"},
			expected: `{"open":1,"game":"kora","state":"lobby"}`,
		},
		{
			name:     "PlayingState",
			label:    MatchLabel{Open: 0, Game: "kora", State: "playing"},
			expected: `{"open":0,"game":"kora","state":"playing"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload, err := json.Marshal(test.label)
			if err != nil {
				t.Fatalf("Failed to marshal label: %v", err)
			}
			if string(payload) != test.expected {
				t.Errorf("Got %s, want %s", payload, test.expected)
			}
		})
	}
}

func TestProcessBotsAddsBotForSoloHuman(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := &MatchState{
		Seats:                [app.SeatsPerGame]string{"user-1", ""},
		Presences:            make(map[string]runtime.Presence),
		Bots:                 make(map[string]*bot.Agent),
		BotAutoFillDelay:     2,
		LastSinglePlayerTick: 8,
		Tick:                 10,
	}

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})

	if !isBotUserId(state.Seats[1]) {
		t.Fatalf("Expected a bot in seat 1, got %q", state.Seats[1])
	}
	if state.GetOpenSeatsCount() != 0 {
		t.Fatalf("Expected 0 open seats after auto-fill, got %d", state.GetOpenSeatsCount())
	}
	if state.LastSinglePlayerTick != 0 {
		t.Fatalf("Expected auto-fill timer reset, got %d", state.LastSinglePlayerTick)
	}
	if len(state.Bots) != 1 {
		t.Fatalf("Expected 1 bot agent, got %d", len(state.Bots))
	}
	if dispatcher.broadcastCount == 0 || dispatcher.labelUpdates == 0 {
		t.Fatalf("Expected match state broadcast and label update after auto-fill")
	}
}

func TestProcessBotsWaitsBeforeFilling(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := &MatchState{
		Seats:            [app.SeatsPerGame]string{"user-1", ""},
		Presences:        make(map[string]runtime.Presence),
		Bots:             make(map[string]*bot.Agent),
		BotAutoFillDelay: 5,
		Tick:             10,
	}

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})

	if state.Seats[1] != "" {
		t.Fatalf("Bot seated before the auto-fill delay elapsed")
	}
	if state.LastSinglePlayerTick != 10 {
		t.Fatalf("Expected auto-fill timer to start at tick 10, got %d", state.LastSinglePlayerTick)
	}
}

func TestHandlePlayCardRejectsOutOfTurn(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := playingState(&mockEconomy{})

	payload, _ := json.Marshal(PlayCardRequest{CardID: domain.CardID(domain.SuitHearts, 10, "")})
	msg := &mockMatchData{
		mockPresence: mockPresence{userID: "user-2"},
		opCode:       OpPlayCard,
		data:         payload,
	}

	handler.handlePlayCard(context.Background(), state, dispatcher, noopLogger{}, msg)

	if dispatcher.lastOpCode != OpGameError {
		t.Fatalf("Expected OpGameError, got %d", dispatcher.lastOpCode)
	}
	if len(dispatcher.lastRecipients) != 1 || dispatcher.lastRecipients[0].GetUserId() != "user-2" {
		t.Fatalf("Error must go only to the offender")
	}

	var wire GameErrorEvent
	if err := json.Unmarshal(dispatcher.lastData, &wire); err != nil {
		t.Fatalf("Failed to unmarshal error event: %v", err)
	}
	if wire.Code != "not_your_turn" {
		t.Fatalf("Expected code not_your_turn, got %q", wire.Code)
	}
	if len(state.Game.Plays) != 0 {
		t.Fatalf("Rejected play must not touch the game")
	}
}

func TestHandlePlayCardBroadcastsPlay(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := playingState(&mockEconomy{})

	payload, _ := json.Marshal(PlayCardRequest{CardID: domain.CardID(domain.SuitHearts, 9, "")})
	msg := &mockMatchData{
		mockPresence: mockPresence{userID: "user-1"},
		opCode:       OpPlayCard,
		data:         payload,
	}

	handler.handlePlayCard(context.Background(), state, dispatcher, noopLogger{}, msg)

	if dispatcher.lastOpCode != OpCardPlayed {
		t.Fatalf("Expected OpCardPlayed, got %d", dispatcher.lastOpCode)
	}
	var wire CardPlayedEvent
	if err := json.Unmarshal(dispatcher.lastData, &wire); err != nil {
		t.Fatalf("Failed to unmarshal play event: %v", err)
	}
	if wire.UserID != "user-1" || wire.Card.Rank != 9 {
		t.Fatalf("Unexpected play event: %+v", wire)
	}
	if wire.NextTurnUserID != "user-2" {
		t.Fatalf("Expected turn to pass to user-2, got %q", wire.NextTurnUserID)
	}
}

func TestSettleGameAppliesWalletChanges(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{}
	botID := bot.GetBotIdentity(0).UserID

	state := playingState(economy)
	state.Seats = [app.SeatsPerGame]string{"user-1", botID}
	state.Game.Players[1].ID = botID
	state.Game.Players[1].Kind = domain.PlayerAI
	domain.Finish(state.Game, domain.Verdict{
		WinnerID:   "user-1",
		Type:       domain.VictorySimpleKora,
		Multiplier: 1.5,
	})

	wire := handler.settleGame(context.Background(), state, dispatcher, noopLogger{}, app.GameEndedPayload{
		WinnerID:    "user-1",
		VictoryType: domain.VictorySimpleKora,
		Multiplier:  1.5,
	})

	// bet 100 each: pot 200, rake 4, payout 294, net +194 for the winner.
	if wire.TotalStake != 200 || wire.Rake != 4 || wire.Winnings != 294 {
		t.Fatalf("Unexpected settlement: %+v", wire)
	}
	if len(economy.updates) != 1 {
		t.Fatalf("Expected 1 wallet update (bot skipped), got %d", len(economy.updates))
	}
	if economy.updates[0].UserID != "user-1" || economy.updates[0].Amount != 194 {
		t.Fatalf("Unexpected wallet update: %+v", economy.updates[0])
	}
	if state.Game != nil {
		t.Fatalf("Table must return to its lobby after settlement")
	}
	if dispatcher.labelUpdates == 0 {
		t.Fatalf("Expected label update back to lobby")
	}
}

func TestHandleRematchStartsWhenAllHumansVote(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := playingState(&mockEconomy{})
	state.Game = nil // previous game settled

	first := &mockMatchData{mockPresence: mockPresence{userID: "user-1"}, opCode: OpRematch}
	handler.handleRematch(context.Background(), state, dispatcher, noopLogger{}, first)
	if state.Game != nil {
		t.Fatalf("Rematch must wait for both votes")
	}

	second := &mockMatchData{mockPresence: mockPresence{userID: "user-2"}, opCode: OpRematch}
	handler.handleRematch(context.Background(), state, dispatcher, noopLogger{}, second)
	if state.Game == nil && dispatcher.lastOpCode != OpGameEnded {
		t.Fatalf("Expected a new game after both votes")
	}
}

func TestTurnClockAutoPlaysLowestCard(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := playingState(&mockEconomy{})
	state.Tick = 100

	// First pass arms the clock for the human on turn.
	handler.processTurnClock(context.Background(), state, dispatcher, noopLogger{})
	if state.TurnClockUserID != "user-1" {
		t.Fatalf("Expected clock armed for user-1, got %q", state.TurnClockUserID)
	}
	if dispatcher.broadcastCount != 0 {
		t.Fatalf("Arming the clock must not broadcast anything")
	}

	// Not yet expired.
	state.Tick = state.TurnDeadline - 1
	handler.processTurnClock(context.Background(), state, dispatcher, noopLogger{})
	if dispatcher.broadcastCount != 0 {
		t.Fatalf("Clock fired before the deadline")
	}

	state.Tick = state.TurnDeadline
	handler.processTurnClock(context.Background(), state, dispatcher, noopLogger{})
	if dispatcher.lastOpCode != OpCardPlayed {
		t.Fatalf("Expected OpCardPlayed on timeout, got %d", dispatcher.lastOpCode)
	}
	var wire CardPlayedEvent
	if err := json.Unmarshal(dispatcher.lastData, &wire); err != nil {
		t.Fatalf("Failed to unmarshal play event: %v", err)
	}
	// user-1 holds H9/C8/D7 and leads, so the forced play is the 7.
	if wire.UserID != "user-1" || wire.Card.Rank != 7 {
		t.Fatalf("Expected user-1 forced to play rank 7, got %+v", wire)
	}
}

func TestMatchLeaveForfeitsLiveGame(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{}
	state := playingState(economy)
	game := state.Game
	versionBefore := game.Version

	result := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.Presence{&mockPresence{userID: "user-2"}})
	if result == nil {
		t.Fatal("user-1 is still seated, the match must survive")
	}

	if game.Status != domain.StatusEnded || game.WinnerID != "user-1" {
		t.Fatalf("Expected forfeit to end the game for user-1, got status=%s winner=%q", game.Status, game.WinnerID)
	}
	if game.VictoryType != domain.VictoryNormal || game.Multiplier != 1.0 {
		t.Fatalf("A forfeit pays out as a normal win, got %s x%v", game.VictoryType, game.Multiplier)
	}
	if game.Version <= versionBefore {
		t.Fatalf("Forfeit must bump the game version, got %d -> %d", versionBefore, game.Version)
	}
	if len(economy.updates) != 2 {
		t.Fatalf("Expected both wallets settled, got %d updates", len(economy.updates))
	}
	if state.Game != nil {
		t.Fatal("Table must return to its lobby after a forfeit settlement")
	}
	if state.Seats[1] != "" {
		t.Fatalf("Expected the leaver's seat freed, got %q", state.Seats[1])
	}
}
