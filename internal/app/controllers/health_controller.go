package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/alijimale/institute-backend/internal/app/models/dto"
)

// HealthController reports dependency health
type HealthController struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

// NewHealthController creates a new HealthController
func NewHealthController(pool *pgxpool.Pool, redisClient *redis.Client) *HealthController {
	return &HealthController{pool: pool, redis: redisClient}
}

const healthProbeTimeout = 2 * time.Second

// Health probes the database and cache
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "All dependencies reachable"
// @Failure 503 {object} dto.HealthResponse "A dependency is down"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", DB: true, Redis: true}

	dbCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthProbeTimeout)
	if err := c.pool.Ping(dbCtx); err != nil {
		resp.DB = false
	}
	cancel()

	redisCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthProbeTimeout)
	if err := c.redis.Ping(redisCtx).Err(); err != nil {
		resp.Redis = false
	}
	cancel()

	status := http.StatusOK
	if !resp.DB || !resp.Redis {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resp)
}
