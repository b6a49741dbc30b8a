package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether Postgres and Redis answer. A degraded dependency
// turns the response into a 503 so the shop's monitor can flag the terminal
// before a sale fails mid-checkout.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		estadoDB := "ok"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			estadoDB = "error"
		}

		estadoRedis := "ok"
		if rdb.Ping(ctx).Err() != nil {
			estadoRedis = "error"
		}

		status := http.StatusOK
		if estadoDB != "ok" || estadoRedis != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    estadoDB,
			"redis": estadoRedis,
		})
	}
}
