package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"kora/internal/app"
	"kora/internal/bot"
	"kora/internal/config"
	"kora/internal/domain"
	"kora/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchLabel is the JSON label the matchmaker queries against.
type MatchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	State string `json:"state"`
}

// MatchState holds the authoritative runtime state for the Nakama match
// handler.
type MatchState struct {
	Seats                [app.SeatsPerGame]string    `json:"seats"` // user IDs, empty string means the seat is free
	Tick                 int64                       `json:"tick"`
	GamesPlayed          int                         `json:"games_played"`
	Presences            map[string]runtime.Presence `json:"-"`
	App                  *app.Service                `json:"-"`
	Game                 *domain.Game                `json:"-"` // nil while in the lobby
	BotsEnabled          bool                        `json:"bots_enabled"`
	BotMinDelay          int                         `json:"bot_min_delay"`
	BotMaxDelay          int                         `json:"bot_max_delay"`
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                       `json:"bot_wait_until"`
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"`
	TurnClockUserID      string                      `json:"turn_clock_user_id"`
	TurnDeadline         int64                       `json:"turn_deadline"`
	RematchVotes         map[string]bool             `json:"-"`
	Bots                 map[string]*bot.Agent       `json:"-"`
	Economy              ports.EconomyPort           `json:"-"`
	Receipts             *app.ReceiptService         `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	for _, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return false
		}
	}
	return true
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Tick:         time.Now().Unix(),
		Presences:    make(map[string]runtime.Presence),
		App:          app.NewService(nil),
		RematchVotes: make(map[string]bool),
		Bots:         make(map[string]*bot.Agent),
		Economy:      NewNakamaEconomyAdapter(nk),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["kora_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["kora_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["kora_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if secret, ok := env["kora_receipt_secret"]; ok && secret != "" {
		state.Receipts = app.NewReceiptService(secret, "kora")
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	state.BotAutoFillDelay = config.GetBotAutoFillDelaySeconds()

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "kora",
		State: "lobby",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is a free seat OR a bot to replace before play
	// begins.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
			continue
		}

		seat := 0
		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				seat = i
				break
			}
		}
		mh.broadcastEvent(ctx, matchState, dispatcher, logger, app.Event{
			Kind:    app.EventPlayerJoined,
			Payload: app.PlayerJoinedPayload{UserID: p.GetUserId(), Seat: seat},
		})
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match. Leaving a
// live game forfeits it to the opponent before the seat is freed.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		delete(matchState.RematchVotes, p.GetUserId())

		if g := matchState.Game; g != nil && g.Status == domain.StatusPlaying && g.PlayerByID(p.GetUserId()) != nil {
			opponent := g.Opponent(p.GetUserId())
			logger.Info("MatchLeave: User %s abandoned a live game, forfeiting to %s", p.GetUserId(), opponent.ID)
			domain.Finish(g, domain.Verdict{WinnerID: opponent.ID, Type: domain.VictoryNormal, Multiplier: 1.0})
			g.Version++
			mh.broadcastEvent(ctx, matchState, dispatcher, logger, app.Event{
				Kind: app.EventGameEnded,
				Payload: app.GameEndedPayload{
					WinnerID:    g.WinnerID,
					VictoryType: g.VictoryType,
					Multiplier:  g.Multiplier,
				},
			})
		}

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				break
			}
		}

		mh.broadcastEvent(ctx, matchState, dispatcher, logger, app.Event{
			Kind:    app.EventPlayerLeft,
			Payload: app.PlayerLeftPayload{UserID: p.GetUserId()},
		})
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpRematch:
			mh.handleRematch(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}
	mh.processTurnClock(ctx, matchState, dispatcher, logger)

	return matchState
}

// processTurnClock force-plays the lowest legal card for a human who has
// let their turn clock run out. Bot turns are paced by processBots instead.
func (mh *matchHandler) processTurnClock(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	if g == nil || g.Status != domain.StatusPlaying {
		state.TurnClockUserID = ""
		return
	}

	currentUserID := g.TurnID
	if isBotUserId(currentUserID) {
		state.TurnClockUserID = ""
		return
	}

	if state.TurnClockUserID != currentUserID {
		state.TurnClockUserID = currentUserID
		state.TurnDeadline = state.Tick + int64(config.GetTurnDurationSeconds())
		return
	}
	if state.Tick < state.TurnDeadline {
		return
	}

	legal := domain.LegalCards(g, g.PlayerByID(currentUserID))
	if len(legal) == 0 {
		logger.Error("processTurnClock: %s timed out with no legal card", currentUserID)
		return
	}
	lowest := legal[0]
	for _, c := range legal[1:] {
		if c.Rank < lowest.Rank {
			lowest = c
		}
	}

	logger.Info("processTurnClock: %s timed out, auto-playing %s", currentUserID, lowest.ID)
	state.TurnClockUserID = ""
	events, err := state.App.PlayCard(g, currentUserID, lowest.ID)
	if err != nil {
		logger.Error("processTurnClock: Auto-play for %s rejected: %v", currentUserID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill the lobby with a bot when a lone human has waited long
	// enough.
	if state.Game == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 && state.GetOpenSeatsCount() > 0 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				for i, seat := range state.Seats {
					if seat != "" {
						continue
					}
					identity := bot.GetBotIdentity(i)
					botID := identity.UserID
					state.Seats[i] = botID

					agent, err := bot.NewAgent(botID)
					if err != nil {
						logger.Error("processBots: Failed to create bot agent for %s: %v", botID, err)
						state.Seats[i] = ""
						continue
					}
					state.Bots[botID] = agent
					logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
				}
				state.LastSinglePlayerTick = 0
				mh.updateLabel(state, dispatcher, logger)
				mh.broadcastMatchState(state, dispatcher, logger)
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot turns in-game.
	if state.Game.Status != domain.StatusPlaying {
		return
	}
	currentUserID := state.Game.TurnID
	if !isBotUserId(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", currentUserID, state.BotWaitUntil, state.Tick)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(currentUserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	move, err := agent.Play(state.Game)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
		return
	}

	events, err := state.App.PlayCard(state.Game, currentUserID, move.ID)
	if err != nil {
		logger.Error("processBots: Bot %s move %s rejected: %v", currentUserID, move.ID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []PlayerStateDTO
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		cardsLeft := 0
		if state.Game != nil {
			if p := state.Game.PlayerByID(userId); p != nil {
				cardsLeft = len(p.Hand)
			}
		}

		playerStates = append(playerStates, PlayerStateDTO{
			UserID:      userId,
			Seat:        i,
			DisplayName: displayName,
			IsBot:       isBotUserId(userId),
			CardsLeft:   cardsLeft,
		})
	}

	matchPhase := "lobby"
	if state.Game != nil {
		matchPhase = "playing"
	}
	snapshot := MatchSnapshotEvent{
		Seats:   state.Seats[:],
		State:   matchPhase,
		Players: playerStates,
	}
	bytes, err := marshalEvent(snapshot)
	if err != nil {
		logger.Error("Failed to marshal match snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchSnapshot, bytes, nil, nil, true)
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if !mh.isSeated(state, senderID) {
		logger.Warn("StartGame: User %s is not seated at this table.", senderID)
		return
	}
	if state.Game != nil {
		logger.Warn("StartGame: Game already in progress.")
		return
	}
	if state.GetOccupiedSeatCount() < app.SeatsPerGame {
		logger.Warn("StartGame: Cannot start with an empty seat.")
		return
	}

	request := &StartGameRequest{}
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), request); err != nil {
			logger.Warn("StartGame: Invalid StartGameRequest from %s: %v", senderID, err)
			return
		}
	}

	mh.startNewGame(ctx, state, dispatcher, logger, request.Tier)
}

// startNewGame builds and opens a game for the currently seated players.
// A dealt auto-win ends it within the same call.
func (mh *matchHandler) startNewGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, tier string) {
	seats := make([]app.Seat, 0, len(state.Seats))
	for _, userID := range state.Seats {
		seat := app.Seat{UserID: userID, Kind: domain.PlayerHuman}
		if isBotUserId(userID) {
			seat.Kind = domain.PlayerAI
			if identity, ok := bot.GetBotConfig(userID); ok {
				seat.BotLevel = identity.Difficulty
			}
		}
		seats = append(seats, seat)
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	gameID := fmt.Sprintf("%s-%d", matchID, state.GamesPlayed+1)
	seed := fmt.Sprintf("%d", time.Now().UnixNano())
	bet := config.GetBaseBet(tier)

	game, err := state.App.CreateGame(gameID, seats, config.GetDeckVariant(), seed, bet)
	if err != nil {
		logger.Error("StartGame: Failed to create game: %v", err)
		return
	}

	events, err := state.App.StartGame(game)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}

	state.Game = game
	state.GamesPlayed++
	state.RematchVotes = make(map[string]bool)
	mh.updateLabel(state, dispatcher, logger)

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("StartGame: Game %s started (bet=%d, variant=%s).", gameID, bet, config.GetDeckVariant())
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil {
		logger.Warn("handlePlayCard: Game not started.")
		mh.sendError(state, dispatcher, logger, senderID, "invalid_state", "game not started")
		return
	}

	request := &PlayCardRequest{}
	if err := json.Unmarshal(msg.GetData(), request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal PlayCardRequest: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, "bad_request", "malformed play request")
		return
	}

	events, err := state.App.PlayCard(state.Game, senderID, request.CardID)
	if err != nil {
		logger.Warn("handlePlayCard: User %s failed to play %s: %v", senderID, request.CardID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// handleRematch records a rematch vote; the next game starts once every
// seated human has voted. Bots always consent.
func (mh *matchHandler) handleRematch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game != nil {
		logger.Warn("handleRematch: Game still in progress.")
		return
	}
	if !mh.isSeated(state, senderID) {
		logger.Warn("handleRematch: User %s is not seated at this table.", senderID)
		return
	}
	if state.GetOccupiedSeatCount() < app.SeatsPerGame {
		logger.Warn("handleRematch: Cannot rematch with an empty seat.")
		return
	}

	state.RematchVotes[senderID] = true
	for _, userID := range state.Seats {
		if !isBotUserId(userID) && !state.RematchVotes[userID] {
			return
		}
	}

	logger.Info("handleRematch: All players agreed, starting a new game.")
	mh.startNewGame(ctx, state, dispatcher, logger, "")
}

func (mh *matchHandler) isSeated(state *MatchState, userID string) bool {
	for _, seatUserId := range state.Seats {
		if seatUserId == userID {
			return true
		}
	}
	return false
}

// broadcastEvent handles the conversion and dispatching of app events to
// Nakama. The terminal event also settles the stakes and signs the receipt
// before the table returns to its lobby.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCode(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	var wire any
	if ev.Kind == app.EventGameEnded {
		wire = mh.settleGame(ctx, state, dispatcher, logger, ev.Payload.(app.GameEndedPayload))
	} else {
		var err error
		wire, err = eventWirePayload(ev)
		if err != nil {
			logger.Error("Failed to convert event %v: %v", ev.Kind, err)
			return
		}
	}

	bytes, err := marshalEvent(wire)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If the intended recipients are all offline (e.g. bots), we
		// must not fall through to a broadcast of a private hand.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// settleGame applies the wallet changes for an ended game and builds the
// terminal wire event, then clears the table back to its lobby.
func (mh *matchHandler) settleGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, p app.GameEndedPayload) GameEndedEvent {
	wire := GameEndedEvent{
		WinnerID:    p.WinnerID,
		VictoryType: string(p.VictoryType),
		Multiplier:  p.Multiplier,
	}

	game := state.Game
	if game != nil {
		settlement, err := app.Settle(game, config.GetTaxRate())
		if err != nil {
			logger.Error("settleGame: Failed to compute settlement: %v", err)
		} else {
			wire.TotalStake = settlement.TotalStake
			wire.Rake = settlement.Rake
			wire.Winnings = settlement.Winnings
			wire.BalanceChanges = settlement.Changes

			if state.Economy != nil {
				updates := settlement.WalletUpdates(game, isBotUserId)
				if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
					logger.Error("settleGame: Failed to update balances: %v", err)
				}
			}

			if state.Receipts != nil {
				receipt, err := state.Receipts.Sign(game, settlement)
				if err != nil {
					logger.Error("settleGame: Failed to sign receipt: %v", err)
				} else {
					wire.Receipt = receipt
				}
			}
		}
	}

	state.Game = nil
	mh.updateLabel(state, dispatcher, logger)
	return wire
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, code, message string) {
	bytes, err := marshalEvent(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	matchPhase := "lobby"
	if state.Game != nil {
		matchPhase = "playing"
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "kora",
		State: matchPhase,
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
