package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTService interface {
	GenerateToken(username string) (*string, error)
	GenerateRefreshToken(username string) (*string, error)
	ValidateToken(token string) (*string, error)
}

type jwtService struct {
	secretKey            string
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewJWTService(secretKey string, accessTokenDuration time.Duration, refreshTokenDuration time.Duration) JWTService {
	return &jwtService{
		secretKey:            secretKey,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}
}

func (s *jwtService) GenerateToken(username string) (*string, error) {
	return s.signedToken(username, s.accessTokenDuration)
}

func (s *jwtService) GenerateRefreshToken(username string) (*string, error) {
	return s.signedToken(username, s.refreshTokenDuration)
}

func (s *jwtService) signedToken(username string, duration time.Duration) (*string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"iat":      time.Now().Unix(),
		"iss":      "restorebot",
		"exp":      time.Now().Add(duration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		username, ok := claims["username"].(string)
		if !ok {
			return nil, errors.New("token is missing its subject")
		}
		expiresAt, ok := claims["exp"].(float64)
		if !ok {
			return nil, errors.New("token is missing its expiry")
		}
		if int64(expiresAt) < time.Now().Unix() {
			return nil, errors.New("token has expired")
		}
		return &username, nil
	}

	return nil, errors.New("invalid token")
}
