package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jashanpj/janasampark/internal/domain/services/container"
	"github.com/jashanpj/janasampark/internal/error/code"
	"github.com/jashanpj/janasampark/internal/error/response"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
)

// HealthController exposes liveness and readiness probes.
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a new health controller.
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc returns a gin handler dispatching to the health
// controller.
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		case "debug":
			controller.Debug()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. Ping is the liveness probe.
// @Summary      Ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /ping [get]
func (c *HealthController) Ping() {
	response.Success(c.Ctx, gin.H{"message": "pong"})
}

// 2. Status is the readiness probe: it reports whether the database answers.
// @Summary      Health status
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func (c *HealthController) Status() {
	dbStatus := "up"
	sqlDB, err := c.Container.GetDB().DB()
	if err != nil {
		dbStatus = "down"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "down"
	}

	response.Success(c.Ctx, gin.H{
		"status":   "ok",
		"database": dbStatus,
		"time":     time.Now().Format(time.RFC3339),
	})
}

// 3. Debug reports the running environment. Not registered outside
// development.
// @Summary      Debug info
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /debug [get]
func (c *HealthController) Debug() {
	cfg := c.Container.GetService("config").(*config.Config)

	response.Success(c.Ctx, gin.H{
		"env":         cfg.EnvType,
		"server_port": cfg.ServerPort,
		"time":        time.Now().Format(time.RFC3339),
	})
}
