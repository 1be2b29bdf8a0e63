package services

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jashanpj/janasampark/pkg/logger"
)

const (
	// Failed login attempts allowed per client before throttling kicks in.
	maxLoginAttempts = 10
	// Window after which the failure counter expires.
	loginAttemptWindow = 15 * time.Minute
)

// InterfaceRateLimitService throttles credential guessing on the login
// endpoint. Counters live in Redis so the limit holds across instances; if
// Redis is unreachable the service degrades to allowing the request.
type InterfaceRateLimitService interface {
	AllowLoginAttempt(clientIP string) bool
	RecordFailedLogin(clientIP string)
	ResetLoginAttempts(clientIP string)
}

// RateLimitService implements InterfaceRateLimitService on Redis.
type RateLimitService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRateLimitService creates a rate limit service around an injected
// client. A nil client disables throttling entirely.
func NewRateLimitService(client *redis.Client) InterfaceRateLimitService {
	return &RateLimitService{
		Client: client,
		Ctx:    context.Background(),
	}
}

func loginAttemptKey(clientIP string) string {
	return "login_attempts:" + clientIP
}

// AllowLoginAttempt reports whether the client is still under the failure
// threshold.
func (s *RateLimitService) AllowLoginAttempt(clientIP string) bool {
	if s.Client == nil {
		return true
	}

	count, err := s.Client.Get(s.Ctx, loginAttemptKey(clientIP)).Int64()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		logger.Warning("rate limiter unavailable, allowing login attempt: %v", err)
		return true
	}

	return count < maxLoginAttempts
}

// RecordFailedLogin bumps the failure counter for the client and refreshes
// the expiry window.
func (s *RateLimitService) RecordFailedLogin(clientIP string) {
	if s.Client == nil {
		return
	}

	key := loginAttemptKey(clientIP)
	if err := s.Client.Incr(s.Ctx, key).Err(); err != nil {
		logger.Warning("failed to record login attempt: %v", err)
		return
	}
	s.Client.Expire(s.Ctx, key, loginAttemptWindow)
}

// ResetLoginAttempts clears the failure counter after a successful login.
func (s *RateLimitService) ResetLoginAttempts(clientIP string) {
	if s.Client == nil {
		return
	}

	if err := s.Client.Del(s.Ctx, loginAttemptKey(clientIP)).Err(); err != nil {
		logger.Warning("failed to reset login attempts: %v", err)
	}
}
