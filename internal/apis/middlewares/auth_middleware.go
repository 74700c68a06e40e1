package middlewares

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"restorebot/internal/apis/dtos"
	"restorebot/internal/di"
	"restorebot/internal/repositories"
	"restorebot/internal/utils"
)

var jwtService *utils.JWTService
var tokenRepo repositories.TokenRepository

func AuthMiddleware() gin.HandlerFunc {
	if jwtService == nil {
		if err := di.DiContainer.Invoke(func(service utils.JWTService) {
			jwtService = &service
		}); err != nil {
			log.Fatalf("Failed to provide JWT service: %v", err)
		}
	}
	if tokenRepo == nil {
		if err := di.DiContainer.Invoke(func(repo repositories.TokenRepository) {
			tokenRepo = repo
		}); err != nil {
			log.Fatalf("Failed to provide Token repository: %v", err)
		}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dtos.Response{
				Success: false,
				Error:   utils.ToStringPtr("Authorization header is required"),
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dtos.Response{
				Success: false,
				Error:   utils.ToStringPtr("Invalid authorization header format"),
			})
			c.Abort()
			return
		}

		token := parts[1]

		// Check if token is blacklisted
		if tokenRepo.IsTokenBlacklisted(token) {
			c.JSON(http.StatusUnauthorized, dtos.Response{
				Success: false,
				Error:   utils.ToStringPtr("Token has been revoked"),
			})
			c.Abort()
			return
		}

		username, err := (*jwtService).ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dtos.Response{
				Success: false,
				Error:   utils.ToStringPtr("Invalid or expired token"),
			})
			c.Abort()
			return
		}

		c.Set("username", *username)
		c.Next()
	}
}
