package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a
	// joinable table.
	RpcQuickMatch = "quick_match"

	// MatchNameKora is the authoritative match handler name registered
	// with Nakama.
	MatchNameKora = "kora_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlayCard  int64 = 2
	OpRematch   int64 = 3

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpGameStarted   int64 = 103
	OpHandDealt     int64 = 104 // send privately
	OpCardPlayed    int64 = 105
	OpRoundResolved int64 = 106
	OpGameEnded     int64 = 107
	OpGameError     int64 = 108
	OpMatchSnapshot int64 = 109
)
