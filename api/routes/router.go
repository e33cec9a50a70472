package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omega-wallet/storefront-api/api/controllers"
	"github.com/omega-wallet/storefront-api/api/middleware"
	cartsvc "github.com/omega-wallet/storefront-api/internal/cart"
	catalogsvc "github.com/omega-wallet/storefront-api/internal/catalog"
	checkoutsvc "github.com/omega-wallet/storefront-api/internal/checkout"
	orderssvc "github.com/omega-wallet/storefront-api/internal/orders"
	reviewssvc "github.com/omega-wallet/storefront-api/internal/reviews"
	sessionsvc "github.com/omega-wallet/storefront-api/internal/session"
	supportsvc "github.com/omega-wallet/storefront-api/internal/support"
	"github.com/omega-wallet/storefront-api/pkg/config"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/metrics"
	"github.com/omega-wallet/storefront-api/pkg/redis"
)

// NewRouter assembles the HTTP surface. Health and metrics sit outside the
// session machinery; everything else runs behind the session cookie, and the
// storefront proper additionally behind the password gate.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	httpStats *metrics.HTTPMetrics,
	sessionService *sessionsvc.Service,
	catalogService catalogsvc.Service,
	cartService cartsvc.Service,
	checkoutService *checkoutsvc.Service,
	flowStore *checkoutsvc.FlowStore,
	ordersService orderssvc.Service,
	reviewService *reviewssvc.Service,
	supportService *supportsvc.Service,
	accountService controllers.AccountService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpStats),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		// The gate and the language toggle stay reachable behind the
		// password page itself.
		r.Route("/session", func(r chi.Router) {
			r.Post("/gate", controllers.GateUnlock(sessionService, cfg.Gate.TokenTTL, logg))
			r.Get("/language", controllers.LanguageGet(sessionService, logg))
			r.Post("/language", controllers.LanguageSet(sessionService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Gate(sessionService, logg))

			r.Route("/product", func(r chi.Router) {
				r.Get("/list", controllers.ProductList(catalogService, sessionService, logg))
				r.Get("/{id}", controllers.ProductDetail(catalogService, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(cartService, logg))
				r.Post("/add", controllers.CartAdd(cartService, logg))
				r.Post("/increase", controllers.CartIncrease(cartService, logg))
				r.Post("/decrease", controllers.CartDecrease(cartService, logg))
				r.Post("/remove", controllers.CartRemove(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/quote", controllers.CheckoutQuote(checkoutService, logg))
				r.Post("/submit", controllers.CheckoutSubmit(checkoutService, logg))
				r.Get("/flow", controllers.CheckoutFlowState(flowStore, logg))
				r.Post("/flow/event", controllers.CheckoutFlowEvent(flowStore, logg))
				r.Post("/confirm", controllers.CheckoutConfirm(checkoutService, logg))
			})

			r.Route("/order", func(r chi.Router) {
				r.Get("/track", controllers.OrderTrack(ordersService, logg))
				r.Get("/tracked", controllers.OrderTracked(ordersService, logg))
				r.Delete("/tracked", controllers.OrderTrackClear(ordersService, logg))
			})

			r.Post("/review/add", controllers.ReviewAdd(reviewService, logg))

			r.Route("/user", func(r chi.Router) {
				r.Post("/shipping", controllers.ShippingSave(accountService, logg))
				r.Post("/email-verification", controllers.EmailVerificationRequest(accountService, logg))
				r.Post("/verify-otp", controllers.OTPVerify(accountService, logg))
				r.Post("/shipping-by-email", controllers.ShippingByEmail(accountService, logg))
			})

			r.Route("/support", func(r chi.Router) {
				r.Post("/contact", controllers.ContactSend(supportService, logg))
				r.Post("/complaint", controllers.ComplaintAdd(supportService, logg))
			})
		})
	})

	return r
}
