package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/playmatatu/ballpark/internal/rules"
)

var ErrInvalidToken = errors.New("invalid token")

// SideClaims identify which team a token controls in which match.
type SideClaims struct {
	MatchID string
	Side    rules.Side
}

// IssueSideToken signs an HS256 token granting control of one side of a match.
func IssueSideToken(secret, matchID string, side rules.Side, ttl time.Duration) (string, error) {
	exp := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"match_id": matchID,
		"side":     side.String(),
		"exp":      jwt.NewNumericDate(exp).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseSideToken validates a side token and returns its claims.
func ParseSideToken(secret, token string) (SideClaims, error) {
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return SideClaims{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return SideClaims{}, ErrInvalidToken
	}
	matchID, _ := claims["match_id"].(string)
	sideName, _ := claims["side"].(string)
	var side rules.Side
	if matchID == "" || side.UnmarshalText([]byte(sideName)) != nil {
		return SideClaims{}, ErrInvalidToken
	}
	return SideClaims{MatchID: matchID, Side: side}, nil
}
