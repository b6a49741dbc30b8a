package worker

// alert_cron.go
// Background goroutine that periodically scans for products below their
// stock_minimo and emails a consolidated alert. A Redis key dedupes alerts so
// the same snapshot is not mailed on every tick; the SMTP circuit breaker
// keeps a downed relay from being hammered.

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"maquillarte/internal/infra"
	"maquillarte/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	alertTickInterval = 30 * time.Minute
	alertDedupeKey    = "alertas:stock_bajo:hash"
	alertDedupeTTL    = 24 * time.Hour
)

// AlertCronConfig holds all dependencies for the low-stock alert goroutine.
type AlertCronConfig struct {
	ProductoRepo repository.ProductoRepository
	Mailer       *infra.Mailer
	CB           *infra.CircuitBreaker
	RDB          *redis.Client
	AlertEmail   string
}

// StartAlertCron launches the goroutine. It respects the context for
// graceful shutdown. A missing AlertEmail disables the cron.
func StartAlertCron(ctx context.Context, cfg AlertCronConfig) {
	if cfg.AlertEmail == "" {
		log.Info().Msg("alert_cron: ALERT_EMAIL not set, disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(alertTickInterval)
		defer ticker.Stop()

		log.Info().Msg("alert_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("alert_cron: shutting down")
				return
			case <-ticker.C:
				processAlertas(ctx, cfg)
			}
		}
	}()
}

func processAlertas(ctx context.Context, cfg AlertCronConfig) {
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("alert_cron: circuit breaker is open, skipping tick")
		return
	}

	productos, err := cfg.ProductoRepo.ListBajoStockMinimo(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alert_cron: failed to query low stock products")
		return
	}
	if len(productos) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Productos por debajo del stock mínimo (%d):\n\n", len(productos))
	for _, p := range productos {
		fmt.Fprintf(&b, "  - %s (%s): %d unidades (mínimo %d)\n", p.Nombre, p.Codigo, p.Cantidad, p.StockMinimo)
	}
	body := b.String()

	// Skip if the snapshot is identical to the last one mailed.
	sum := sha256.Sum256([]byte(body))
	hash := hex.EncodeToString(sum[:])
	if prev, err := cfg.RDB.Get(ctx, alertDedupeKey).Result(); err == nil && prev == hash {
		return
	}

	err = cfg.CB.Execute(func() error {
		return cfg.Mailer.Send(cfg.AlertEmail, "Alerta de stock bajo", body, "")
	})
	if err != nil {
		log.Error().Err(err).Msg("alert_cron: failed to send alert email")
		return
	}

	_ = cfg.RDB.Set(ctx, alertDedupeKey, hash, alertDedupeTTL).Err()
	log.Info().Int("productos", len(productos)).Msg("alert_cron: low stock alert sent")
}
