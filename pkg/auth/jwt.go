package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iamasit07/flexfour/internal/config"
	"github.com/iamasit07/flexfour/internal/domain"
)

// GameClaims binds a token to one game and the side the human plays
type GameClaims struct {
	GameID    string          `json:"game_id"`
	HumanSide domain.PlayerID `json:"human_side"`
	jwt.RegisteredClaims
}

// GenerateGameToken creates the token a client presents for every call on its game
func GenerateGameToken(gameID string, humanSide domain.PlayerID) (string, error) {
	secret := config.AppConfig.JWTSecret
	ttl := config.AppConfig.GameTokenTTL

	claims := &GameClaims{
		GameID:    gameID,
		HumanSide: humanSide,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateGameToken validates a game token and returns its claims
func ValidateGameToken(tokenString string) (*GameClaims, error) {
	secret := config.AppConfig.JWTSecret

	token, err := jwt.ParseWithClaims(tokenString, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GameClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid game token")
}
