package services

import (
	"errors"
	"net/http"
	"time"

	"restorebot/config"
	"restorebot/internal/apis/dtos"
	"restorebot/internal/repositories"
	"restorebot/internal/utils"
)

// AuthService authenticates the operator account configured through the
// environment and manages its tokens. Restoration runs write into a live
// target store, so the API never runs open.
type AuthService interface {
	Login(req *dtos.LoginRequest) (*dtos.AuthResponse, uint, error)
	RefreshToken(refreshToken string) (*dtos.RefreshTokenResponse, uint, error)
	Logout(refreshToken string, accessToken string) (uint, error)
}

type authService struct {
	jwtService utils.JWTService
	tokenRepo  repositories.TokenRepository
}

func NewAuthService(jwtService utils.JWTService, tokenRepo repositories.TokenRepository) AuthService {
	return &authService{
		jwtService: jwtService,
		tokenRepo:  tokenRepo,
	}
}

func (s *authService) Login(req *dtos.LoginRequest) (*dtos.AuthResponse, uint, error) {
	if req.Username != config.Env.AdminUser || req.Password != config.Env.AdminPassword {
		return nil, http.StatusUnauthorized, errors.New("invalid username or password")
	}

	accessToken, err := s.jwtService.GenerateToken(req.Username)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(req.Username)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	if err := s.tokenRepo.StoreRefreshToken(req.Username, *refreshToken); err != nil {
		return nil, http.StatusInternalServerError, err
	}

	return &dtos.AuthResponse{
		AccessToken:  *accessToken,
		RefreshToken: *refreshToken,
		Username:     req.Username,
	}, http.StatusOK, nil
}

func (s *authService) RefreshToken(refreshToken string) (*dtos.RefreshTokenResponse, uint, error) {
	username, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, http.StatusUnauthorized, errors.New("invalid or expired refresh token")
	}

	if !s.tokenRepo.ValidateRefreshToken(*username, refreshToken) {
		return nil, http.StatusUnauthorized, errors.New("refresh token has been revoked")
	}

	accessToken, err := s.jwtService.GenerateToken(*username)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	return &dtos.RefreshTokenResponse{AccessToken: *accessToken}, http.StatusOK, nil
}

func (s *authService) Logout(refreshToken string, accessToken string) (uint, error) {
	username, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return http.StatusUnauthorized, errors.New("invalid refresh token")
	}

	if err := s.tokenRepo.DeleteRefreshToken(*username, refreshToken); err != nil {
		return http.StatusNotFound, err
	}

	// The access token stays valid cryptographically until expiry, so it is
	// blacklisted for its remaining lifetime.
	expiration := time.Duration(config.Env.JWTExpirationMilliseconds) * time.Millisecond
	if err := s.tokenRepo.BlacklistToken(accessToken, expiration); err != nil {
		return http.StatusInternalServerError, err
	}

	return http.StatusOK, nil
}
