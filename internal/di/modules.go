package di

import (
	"log"
	"time"

	"go.uber.org/dig"

	"restorebot/config"
	"restorebot/internal/apis/handlers"
	"restorebot/internal/repositories"
	"restorebot/internal/services"
	"restorebot/internal/utils"
	"restorebot/pkg/mongodb"
	"restorebot/pkg/redis"
	"restorebot/pkg/restorer"
)

var DiContainer *dig.Container

func Initialize() {
	DiContainer = dig.New()

	// Initialize the target MongoDB store
	dbConfig := mongodb.MongoDbConfigModel{
		ConnectionUrl: config.Env.TargetMongoURI,
	}
	mongodbClient := mongodb.InitializeDatabaseConnection(dbConfig)

	// Initialize Redis
	redisClient, err := redis.RedisClient(config.Env.RedisHost, config.Env.RedisPort, config.Env.RedisUsername, config.Env.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to initialize Redis client: %v", err)
	}

	// Initialize repositories and services
	redisRepo := redis.NewRedisRepositories(redisClient)
	jwtService := utils.NewJWTService(
		config.Env.JWTSecret,
		time.Millisecond*time.Duration(config.Env.JWTExpirationMilliseconds),
		time.Millisecond*time.Duration(config.Env.JWTRefreshExpirationMilliseconds),
	)

	tokenRepo := repositories.NewTokenRepository(redisRepo)
	runRepo := repositories.NewRunRepository(redisRepo)

	// Provide all dependencies to the container
	if err := DiContainer.Provide(func() *mongodb.MongoDBClient { return mongodbClient }); err != nil {
		log.Fatalf("Failed to provide MongoDB client: %v", err)
	}

	if err := DiContainer.Provide(func() redis.IRedisRepositories { return redisRepo }); err != nil {
		log.Fatalf("Failed to provide Redis repositories: %v", err)
	}

	if err := DiContainer.Provide(func() utils.JWTService { return jwtService }); err != nil {
		log.Fatalf("Failed to provide JWT service: %v", err)
	}

	if err := DiContainer.Provide(func() repositories.TokenRepository { return tokenRepo }); err != nil {
		log.Fatalf("Failed to provide token repository: %v", err)
	}

	if err := DiContainer.Provide(func() repositories.RunRepository { return runRepo }); err != nil {
		log.Fatalf("Failed to provide run repository: %v", err)
	}

	// The writer adapts the MongoDB client to the engine's target-store
	// capability (insert, create index, drop, ping).
	if err := DiContainer.Provide(func(db *mongodb.MongoDBClient) restorer.TargetStore {
		return mongodb.NewWriter(db)
	}); err != nil {
		log.Fatalf("Failed to provide target store: %v", err)
	}

	// Provide services
	if err := DiContainer.Provide(func(jwt utils.JWTService, tokenRepo repositories.TokenRepository) services.AuthService {
		return services.NewAuthService(jwt, tokenRepo)
	}); err != nil {
		log.Fatalf("Failed to provide auth service: %v", err)
	}

	if err := DiContainer.Provide(func(store restorer.TargetStore, runRepo repositories.RunRepository) services.RestoreService {
		return services.NewRestoreService(store, runRepo)
	}); err != nil {
		log.Fatalf("Failed to provide restore service: %v", err)
	}

	// Provide handlers
	if err := DiContainer.Provide(func(authService services.AuthService) *handlers.AuthHandler {
		return handlers.NewAuthHandler(authService)
	}); err != nil {
		log.Fatalf("Failed to provide auth handler: %v", err)
	}

	if err := DiContainer.Provide(func(restoreService services.RestoreService) *handlers.RestoreHandler {
		return handlers.NewRestoreHandler(restoreService)
	}); err != nil {
		log.Fatalf("Failed to provide restore handler: %v", err)
	}
}

// GetAuthHandler retrieves the AuthHandler from the DI container
func GetAuthHandler() (*handlers.AuthHandler, error) {
	var handler *handlers.AuthHandler
	err := DiContainer.Invoke(func(h *handlers.AuthHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// GetRestoreHandler retrieves the RestoreHandler from the DI container
func GetRestoreHandler() (*handlers.RestoreHandler, error) {
	var handler *handlers.RestoreHandler
	err := DiContainer.Invoke(func(h *handlers.RestoreHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}
