package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"kora/internal/domain"
)

// ReceiptService signs settlement receipts. The client attaches the token
// to support requests; anyone holding the secret can verify what a game
// actually paid out without trusting the client's copy of the state.
type ReceiptService struct {
	secret string
	issuer string
}

// NewReceiptService constructs a receipt signer.
func NewReceiptService(secret, issuer string) *ReceiptService {
	return &ReceiptService{secret: secret, issuer: issuer}
}

// Sign produces a compact HS256 token over the game's monetary outcome.
func (s *ReceiptService) Sign(g *domain.Game, settlement Settlement) (string, error) {
	if s == nil {
		return "", fmt.Errorf("receipt service is nil")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("receipt config is incomplete")
	}
	if g.Status != domain.StatusEnded {
		return "", ErrNotEnded
	}

	claims := jwt.MapClaims{
		"iss":          s.issuer,
		"sub":          g.WinnerID,
		"iat":          time.Now().Unix(),
		"exp":          time.Now().Add(30 * 24 * time.Hour).Unix(),
		"game_id":      g.ID,
		"victory_type": string(g.VictoryType),
		"multiplier":   g.Multiplier,
		"total_stake":  settlement.TotalStake,
		"rake":         settlement.Rake,
		"winnings":     settlement.Winnings,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Verify parses and validates a receipt token, returning its claims.
func (s *ReceiptService) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid receipt token")
	}
	return claims, nil
}
