package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greencycle/ewaste-backend/api/controllers"
	"github.com/greencycle/ewaste-backend/api/middleware"
	"github.com/greencycle/ewaste-backend/internal/admin"
	"github.com/greencycle/ewaste-backend/internal/auth"
	"github.com/greencycle/ewaste-backend/internal/certificates"
	"github.com/greencycle/ewaste-backend/internal/pickuppersons"
	"github.com/greencycle/ewaste-backend/internal/requests"
	"github.com/greencycle/ewaste-backend/internal/stats"
	"github.com/greencycle/ewaste-backend/pkg/auth/session"
	"github.com/greencycle/ewaste-backend/pkg/config"
	"github.com/greencycle/ewaste-backend/pkg/enums"
	"github.com/greencycle/ewaste-backend/pkg/logger"
	"github.com/greencycle/ewaste-backend/pkg/metrics"
	"github.com/greencycle/ewaste-backend/pkg/redis"
)

// Deps bundles everything the router needs; nil optional entries disable
// their endpoints gracefully.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	Metrics        *metrics.HTTPMetrics
	ReadyChecks    map[string]controllers.Pinger

	AuthService        auth.Service
	RequestsService    requests.Service
	StatsService       stats.Service
	AdminService       admin.Service
	CertificateService certificates.Service
	PickupPersons      *pickuppersons.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	authn := middleware.Auth(cfg.JWT, deps.SessionChecker, logg)
	adminOnly := middleware.RequireRole(string(enums.UserRoleAdmin), logg)
	pickupOnly := middleware.RequireRole(string(enums.UserRolePickupPerson), logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadyChecks))
	})

	throttled := func(policy middleware.AuthRateLimitPolicy, h http.HandlerFunc) http.HandlerFunc {
		if deps.Redis == nil {
			return h
		}
		return middleware.AuthRateLimit(policy, deps.Redis, logg)(h).ServeHTTP
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", throttled(registerPolicy, controllers.AuthRegister(deps.AuthService, logg)))
		r.Post("/login", throttled(loginPolicy, controllers.AuthLogin(deps.AuthService, logg)))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/requests", func(r chi.Router) {
		r.Get("/dashboard/stats", controllers.DashboardStats(deps.StatsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Post("/", controllers.RequestCreate(deps.RequestsService, cfg.GCS, logg))
			r.Get("/user", controllers.RequestsForUser(deps.RequestsService, logg))
			r.Get("/stats/user", controllers.UserStats(deps.StatsService, logg))

			r.With(pickupOnly).Get("/assigned", controllers.RequestsAssigned(deps.RequestsService, deps.PickupPersons, logg))

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", controllers.RequestsAll(deps.RequestsService, logg))
				r.Put("/{id}/status", controllers.RequestUpdateStatus(deps.RequestsService, logg))
				r.Put("/{id}/schedule", controllers.RequestSchedule(deps.RequestsService, logg))
			})
		})
	})

	r.With(authn).Get("/api/certificate", controllers.CertificateDownload(deps.CertificateService, logg))

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authn, adminOnly)

		r.Get("/dashboard-summary", controllers.AdminDashboardSummary(deps.StatsService, logg))
		r.Get("/pickup-persons", controllers.AdminListPickupPersons(deps.AdminService, logg))
		r.Post("/register-pickup-person", controllers.AdminRegisterPickupPerson(deps.AdminService, logg))
		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminListUsers(deps.AdminService, logg))
			r.Put("/{id}", controllers.AdminUpdateUser(deps.AdminService, logg))
			r.Put("/{id}/status", controllers.AdminUpdateUserStatus(deps.AdminService, logg))
			r.Delete("/{id}", controllers.AdminDeleteUser(deps.AdminService, logg))
		})
	})

	return r
}
