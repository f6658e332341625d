package controllers

import (
	"context"
	"net/http"

	"github.com/swiftkart/checkout-service/api/responses"
	"github.com/swiftkart/checkout-service/pkg/config"
	"github.com/swiftkart/checkout-service/pkg/db"
	"github.com/swiftkart/checkout-service/pkg/logger"
	"github.com/swiftkart/checkout-service/pkg/redis"
)

const envHeader = "X-SwiftKart-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the datastores the checkout pipeline depends on.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger db.Pinger, redisPinger redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{
			"db":    pingStatus(r.Context(), dbPinger),
			"redis": pingStatus(r.Context(), redisPinger),
		}

		for name, status := range checks {
			if status == "unavailable" {
				if logg != nil {
					ctx := logg.WithField(r.Context(), "dependency", name)
					logg.Warn(ctx, "readiness check failed")
				}
				responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]any{
					"status": "degraded",
					"checks": checks,
				})
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

func pingStatus(ctx context.Context, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "ok"
}
