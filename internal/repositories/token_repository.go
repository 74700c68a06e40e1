package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"restorebot/config"
	"restorebot/internal/utils"
	"restorebot/pkg/redis"
)

type TokenRepository interface {
	StoreRefreshToken(username string, refreshToken string) error
	ValidateRefreshToken(username string, refreshToken string) bool
	DeleteRefreshToken(username string, refreshToken string) error
	BlacklistToken(token string, expiresAt time.Duration) error
	IsTokenBlacklisted(token string) bool
}

type tokenRepository struct {
	redis redis.IRedisRepositories
}

func NewTokenRepository(redis redis.IRedisRepositories) TokenRepository {
	return &tokenRepository{
		redis: redis,
	}
}

// Tokens are hashed before being used as keys so the raw JWTs never land in
// the keyspace.
func refreshTokenKey(username, refreshToken string) string {
	return fmt.Sprintf("refresh_token:%s:%s", username, utils.MD5Hash(refreshToken))
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", utils.MD5Hash(token))
}

func (r *tokenRepository) StoreRefreshToken(username string, refreshToken string) error {
	key := refreshTokenKey(username, refreshToken)
	expirationDuration := time.Duration(config.Env.JWTRefreshExpirationMilliseconds) * time.Millisecond

	err := r.redis.Set(key, []byte("valid"), expirationDuration, context.Background())
	if err != nil {
		log.Printf("Error storing refresh token: %v", err)
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *tokenRepository) ValidateRefreshToken(username string, refreshToken string) bool {
	value, err := r.redis.Get(refreshTokenKey(username, refreshToken), context.Background())
	if err != nil {
		log.Printf("Refresh token validation failed: %v", err)
		return false
	}
	return value == "valid"
}

func (r *tokenRepository) DeleteRefreshToken(username string, refreshToken string) error {
	key := refreshTokenKey(username, refreshToken)

	// Verify token exists before deletion
	_, err := r.redis.Get(key, context.Background())
	if err != nil {
		return errors.New("refresh token not found")
	}

	err = r.redis.Del(key, context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (r *tokenRepository) BlacklistToken(token string, expiresAt time.Duration) error {
	err := r.redis.Set(blacklistKey(token), []byte("blacklisted"), expiresAt, context.Background())
	if err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (r *tokenRepository) IsTokenBlacklisted(token string) bool {
	value, err := r.redis.Get(blacklistKey(token), context.Background())
	if err != nil {
		return false
	}
	return value == "blacklisted"
}
