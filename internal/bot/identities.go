package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Identity describes one bot account in the opponent pool. Each identity
// pins a difficulty tier so the pool offers a spread of opponents.
type Identity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

// identityMu guards the pool and its lookup maps. Every match loop runs on
// its own goroutine, so auto-fill and provisioning touch these concurrently.
var (
	identityMu    sync.RWMutex
	identities    []Identity
	idSet         map[string]bool
	usernameByID  map[string]string
	displayByID   map[string]string
	identityByID  map[string]Identity
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot pool from the given JSON path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var loaded []Identity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		identityMu.Lock()
		defer identityMu.Unlock()
		identities = loaded
		for _, identity := range identities {
			if identity.UserID != "" {
				mapIdentityLocked(identity)
			}
		}
	})
	return loadErr
}

// mapIdentityLocked registers an identity in the lookup maps. Callers must
// hold identityMu.
func mapIdentityLocked(identity Identity) {
	if idSet == nil {
		idSet = make(map[string]bool)
		usernameByID = make(map[string]string)
		displayByID = make(map[string]string)
		identityByID = make(map[string]Identity)
	}
	idSet[identity.UserID] = true
	usernameByID[identity.UserID] = identity.Username
	displayByID[identity.UserID] = identity.DisplayName
	identityByID[identity.UserID] = identity
}

// ProvisionBots ensures every pooled bot has a Nakama account flagged with
// is_bot metadata. Runs at most once per process.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	provisionOnce.Do(func() {
		identityMu.Lock()
		defer identityMu.Unlock()
		for i := range identities {
			identity := &identities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"difficulty":   identity.Difficulty,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: failed to update bot account %s: %v", userID, err)
			}

			mapIdentityLocked(*identity)
			logger.Info("ProvisionBots: bot %s (%s) ready, difficulty %s", identity.DisplayName, userID, identity.Difficulty)
		}
	})
	return nil
}

// GetBotConfig returns the full identity for a bot user id.
func GetBotConfig(userID string) (Identity, bool) {
	identityMu.RLock()
	defer identityMu.RUnlock()
	identity, ok := identityByID[userID]
	return identity, ok
}

// GetBotUsername returns the username for a bot id, or "" if not a bot.
func GetBotUsername(userID string) string {
	identityMu.RLock()
	defer identityMu.RUnlock()
	return usernameByID[userID]
}

// GetBotDisplayName returns the display name for a bot id, falling back to
// the username.
func GetBotDisplayName(userID string) string {
	identityMu.RLock()
	defer identityMu.RUnlock()
	if name := displayByID[userID]; name != "" {
		return name
	}
	return usernameByID[userID]
}

// GetBotIdentity returns a pool identity by index (mod pool size), with a
// synthetic fallback when no pool is loaded. Identities handed out before
// provisioning get a deterministic user id so IsBot recognizes the seat.
func GetBotIdentity(index int) Identity {
	identityMu.Lock()
	defer identityMu.Unlock()

	var identity Identity
	if len(identities) == 0 {
		identity = Identity{
			UserID:      fmt.Sprintf("bot-%d", index),
			Username:    fmt.Sprintf("bot-%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
			Difficulty:  string(LevelMedium),
		}
	} else {
		identity = identities[index%len(identities)]
		if identity.UserID == "" {
			identity.UserID = fmt.Sprintf("bot-%s", identity.DeviceID)
		}
	}
	mapIdentityLocked(identity)
	return identity
}

// IsBot reports whether the user id belongs to the bot pool.
func IsBot(userID string) bool {
	identityMu.RLock()
	defer identityMu.RUnlock()
	return idSet[userID]
}
