package utils

import (
	"time"

	"github.com/golang-jwt/jwt"

	"social-dashboard/infrastructure/logger"
)

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

func GenerateToken(payload map[string]interface{}, secretKey string) (string, error) {
	var claims jwt.MapClaims = payload
	return sign(jwt.NewWithClaims(jwt.SigningMethodHS256, claims), secretKey)
}

// GenerateTokenWithClaims signs typed claims, used by the auth flow.
func GenerateTokenWithClaims(claims jwt.Claims, secretKey string) (string, error) {
	return sign(jwt.NewWithClaims(jwt.SigningMethodHS256, claims), secretKey)
}

func sign(token *jwt.Token, secretKey string) (string, error) {
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", err
	}
	return tokenString, nil
}
