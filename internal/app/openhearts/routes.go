// Package openhearts предоставляет маршруты для основного приложения.
package openhearts

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/openhearts/openhearts/internal/http/handlers/auth/login"
	"github.com/openhearts/openhearts/internal/http/handlers/auth/me"
	"github.com/openhearts/openhearts/internal/http/handlers/auth/register"
	categorycreate "github.com/openhearts/openhearts/internal/http/handlers/category/create"
	categorylist "github.com/openhearts/openhearts/internal/http/handlers/category/list"
	categoryread "github.com/openhearts/openhearts/internal/http/handlers/category/read"
	categoryremove "github.com/openhearts/openhearts/internal/http/handlers/category/remove"
	categoryupdate "github.com/openhearts/openhearts/internal/http/handlers/category/update"
	donationcreate "github.com/openhearts/openhearts/internal/http/handlers/donation/create"
	donationlist "github.com/openhearts/openhearts/internal/http/handlers/donation/list"
	donationread "github.com/openhearts/openhearts/internal/http/handlers/donation/read"
	donationstats "github.com/openhearts/openhearts/internal/http/handlers/donation/stats"
	"github.com/openhearts/openhearts/internal/http/handlers/payment/paymentintent"
	"github.com/openhearts/openhearts/internal/http/middlewarectx"
	"github.com/openhearts/openhearts/internal/obs"
	"github.com/openhearts/openhearts/internal/paymentprovider"
	authservice "github.com/openhearts/openhearts/internal/services/auth"
	categoryservice "github.com/openhearts/openhearts/internal/services/category"
	donationservice "github.com/openhearts/openhearts/internal/services/donation"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	categoryService *categoryservice.CategoryService,
	donationService *donationservice.DonationService,
	providerClient *paymentprovider.Client, currency string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		obs.Instrument,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/categories", categorylist.New(logger, categoryService).ServeHTTP)
		r.Get("/categories/{id}", categoryread.New(logger, categoryService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Get("/auth/me", me.New(logger, authService).ServeHTTP)
			r.Get("/donations", donationlist.New(logger, donationService).ServeHTTP)
			r.Post("/donations", donationcreate.New(logger, donationService).ServeHTTP)
			r.Get("/donations/{id}", donationread.New(logger, donationService).ServeHTTP)
			r.Post("/payment/create-payment-intent", paymentintent.New(logger, providerClient, currency).ServeHTTP)

			// Группа администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))
				r.Post("/categories", categorycreate.New(logger, categoryService).ServeHTTP)
				r.Put("/categories/{id}", categoryupdate.New(logger, categoryService).ServeHTTP)
				r.Delete("/categories/{id}", categoryremove.New(logger, categoryService).ServeHTTP)
				r.Get("/donations/stats/total", donationstats.New(logger, donationService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", obs.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
