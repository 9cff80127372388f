package api

import (
	"net/http"

	"github.com/amehta/pressroom/internal/api/handlers"
	"github.com/amehta/pressroom/internal/api/middleware"
	"github.com/amehta/pressroom/internal/config"
	"github.com/amehta/pressroom/internal/domain"
	"github.com/amehta/pressroom/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(services *service.Services, db *gorm.DB, cfg *config.Config, logger *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Credentials, services.Tokens, logger)
	articleHandler := handlers.NewArticleHandler(services.Articles, logger)
	healthHandler := handlers.NewHealthHandler(db, logger)

	// Liveness and health
	r.Get("/", healthHandler.Status)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", healthHandler.Status)
		r.Get("/health", healthHandler.Check)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.Refresh)

			// Rate-limited before the credential store is ever touched.
			r.Group(func(r chi.Router) {
				r.Use(httprate.Limit(
					cfg.LoginRateLimit,
					cfg.LoginRateWindow,
					httprate.WithKeyFuncs(httprate.KeyByIP),
				))
				r.Post("/login", authHandler.Login)
			})
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/latest", articleHandler.Latest)
			r.Get("/featured", articleHandler.Featured)
			r.Get("/category/{category}", articleHandler.ByCategory)
			r.Get("/{id}", articleHandler.GetByID)

			// Publishing requires a valid access token and a publishing role
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Tokens))
				r.Use(middleware.RequireRole(domain.ActionPublishArticle))
				r.Post("/", articleHandler.Create)
			})
		})
	})

	return r
}
