package handler

import (
	"net/http"
	"time"

	"saribill/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Check godoc
// @Summary      Health check
// @Description  Pings the database and redis. Degraded dependencies are reported with a 503.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	report := gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		report["database"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		report["database"] = "up"
	}

	if err := h.rdb.Ping(ctx).Err(); err != nil {
		report["redis"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		report["redis"] = "up"
		if n, err := worker.DLQLength(ctx, h.rdb, worker.QueueShare); err == nil {
			report["share_dlq"] = n
		}
	}

	if status != http.StatusOK {
		report["status"] = "degraded"
	}
	c.JSON(status, report)
}
