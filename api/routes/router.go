package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swiftkart/checkout-service/api/controllers"
	"github.com/swiftkart/checkout-service/api/middleware"
	"github.com/swiftkart/checkout-service/internal/cart"
	checkoutsvc "github.com/swiftkart/checkout-service/internal/checkout"
	"github.com/swiftkart/checkout-service/pkg/config"
	"github.com/swiftkart/checkout-service/pkg/db"
	"github.com/swiftkart/checkout-service/pkg/logger"
	"github.com/swiftkart/checkout-service/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger db.Pinger,
	redisClient *redis.Client,
	cartService *cart.Service,
	checkoutService *checkoutsvc.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisPinger(redisClient)))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore(redisClient), cfg.Checkout.IdempotencyTTL, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Put("/", controllers.CartReplace(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/quote", controllers.CartQuote(checkoutService, logg))
		})

		r.Post("/coupons/validate", controllers.CouponValidate(checkoutService, logg))
		r.Post("/checkout", controllers.Checkout(checkoutService, logg))
		r.Get("/orders/my/{orderId}", controllers.OrderDetail(checkoutService, logg))
	})

	return r
}

// idempotencyStore avoids handing a typed-nil interface to the middleware
// when redis is not configured.
func idempotencyStore(client *redis.Client) redis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}

func redisPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}
