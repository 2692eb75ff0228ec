package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"kora/internal/bot"
)

// InitModule wires RPCs, hooks and the match handler for the Nakama
// runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameKora, NewMatch); err != nil {
		return err
	}

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("bot identity pool unavailable: %v", err)
	} else if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
		return err
	}

	logger.Info("Kora Go module loaded.")
	return nil
}
