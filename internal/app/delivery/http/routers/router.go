package routers

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type Controllers struct {
	Patient   *controllers.PatientController
	Payment   *controllers.PaymentController
	Insurance *controllers.InsuranceController
	Auth      *controllers.AuthController
	Health    *controllers.HealthController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	handlers *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.AllowedOrigins(),
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXCSRFToken, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	window := time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, window))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)
	router.Use(middlewares.RequestTimeout)

	router.Get("/health", handlers.Health.Health)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Get("/health", handlers.Health.Health)

		r.Route("/auth", func(r chi.Router) {
			attachAuthRoutes(r, middlewares, handlers.Auth)
		})

		r.Route("/patients", func(r chi.Router) {
			attachPatientRoutes(r, middlewares, handlers.Patient)
		})

		r.Route("/payments", func(r chi.Router) {
			attachPaymentRoutes(r, middlewares, handlers.Payment)
		})

		r.Route("/insurance", func(r chi.Router) {
			attachInsuranceRoutes(r, middlewares, handlers.Insurance)
		})
	})
}
