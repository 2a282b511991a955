package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bazaarly/bazaarly-backend/api/controllers"
	"github.com/bazaarly/bazaarly-backend/api/middleware"
	authsvc "github.com/bazaarly/bazaarly-backend/internal/auth"
	checkoutsvc "github.com/bazaarly/bazaarly-backend/internal/checkout"
	"github.com/bazaarly/bazaarly-backend/internal/orders"
	"github.com/bazaarly/bazaarly-backend/internal/vendors"
	"github.com/bazaarly/bazaarly-backend/pkg/auth/session"
	"github.com/bazaarly/bazaarly-backend/pkg/config"
	"github.com/bazaarly/bazaarly-backend/pkg/db"
	"github.com/bazaarly/bazaarly-backend/pkg/logger"
	"github.com/bazaarly/bazaarly-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker

	AuthService     authsvc.Service
	VendorsService  vendors.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	logg := deps.Logger

	r.Use(
		middleware.CORS(),
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		deps.Config.AuthRateLimit.LoginWindow,
		deps.Config.AuthRateLimit.LoginIPLimit,
		deps.Config.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		deps.Config.AuthRateLimit.RegisterWindow,
		deps.Config.AuthRateLimit.RegisterIPLimit,
		deps.Config.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.DB, deps.Redis, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/auth/register", controllers.AuthRegister(deps.AuthService, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/auth/login", controllers.AuthLogin(deps.AuthService, logg))
			r.Post("/vendors/signup", controllers.VendorsSignup(deps.VendorsService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Config.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.AuthService, logg))

			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", controllers.VendorsList(deps.VendorsService, logg))
				r.Get("/me", controllers.VendorsMe(deps.VendorsService, logg))
				r.Patch("/me", controllers.VendorsUpdateMe(deps.VendorsService, logg))
				r.Post("/{vendorID}/approve", controllers.VendorsApprove(deps.VendorsService, logg))
				r.Post("/{vendorID}/reject", controllers.VendorsReject(deps.VendorsService, logg))
				r.Post("/{vendorID}/suspend", controllers.VendorsSuspend(deps.VendorsService, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(deps.OrdersService, logg))
				r.Get("/{orderID}", controllers.OrdersDetail(deps.OrdersService, logg))
				r.Patch("/{orderID}/status", controllers.OrdersUpdateStatus(deps.OrdersService, logg))
				r.Post("/{orderID}/reviews", controllers.OrdersCreateReview(deps.OrdersService, logg))
			})
		})
	})

	return r
}
