package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/jashanpj/janasampark/internal/domain/services"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
	"github.com/jashanpj/janasampark/pkg/logger"
)

// ServiceContainer wires every service with its dependencies.
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	jwtService       services.InterfaceJWTService
	userService      services.InterfaceUserService
	surveyService    services.InterfaceSurveyService
	rateLimitService services.InterfaceRateLimitService

	mu sync.RWMutex
}

// NewServiceContainer creates a new service container. The Redis client may
// be nil; only login throttling depends on it.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}

	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warning("Redis ping failed: %v, login throttling disabled", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices constructs every service.
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config, c.db)
	c.userService = services.NewUserService(c.db, c.config)
	c.surveyService = services.NewSurveyService(c.db, c.config)
	c.rateLimitService = services.NewRateLimitService(c.redis)
}

// GetService returns the service registered under name.
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "user":
		return c.userService
	case "survey":
		return c.surveyService
	case "rate_limit":
		return c.rateLimitService
	default:
		return nil
	}
}

// GetDB returns the database handle.
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
