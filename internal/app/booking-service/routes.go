// Package bookingservice собирает HTTP-приложение сервиса бронирования: маршруты,
// middleware, зависимости и жизненный цикл сервера.
package bookingservice

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/booking-service/internal/config"
	"github.com/magabrotheeeer/booking-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/booking-service/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/booking-service/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/booking-service/internal/http/handlers/auth/register"
	bookingcreate "github.com/magabrotheeeer/booking-service/internal/http/handlers/booking/create"
	bookinglist "github.com/magabrotheeeer/booking-service/internal/http/handlers/booking/list"
	"github.com/magabrotheeeer/booking-service/internal/http/handlers/health"
	placecreate "github.com/magabrotheeeer/booking-service/internal/http/handlers/place/create"
	placelist "github.com/magabrotheeeer/booking-service/internal/http/handlers/place/list"
	"github.com/magabrotheeeer/booking-service/internal/http/handlers/place/listown"
	placeread "github.com/magabrotheeeer/booking-service/internal/http/handlers/place/read"
	placeupdate "github.com/magabrotheeeer/booking-service/internal/http/handlers/place/update"
	"github.com/magabrotheeeer/booking-service/internal/http/handlers/upload/bylink"
	"github.com/magabrotheeeer/booking-service/internal/http/handlers/upload/photos"
	"github.com/magabrotheeeer/booking-service/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/booking-service/internal/services/auth"
	bookingservices "github.com/magabrotheeeer/booking-service/internal/services/booking"
	placeservice "github.com/magabrotheeeer/booking-service/internal/services/place"
	uploadservice "github.com/magabrotheeeer/booking-service/internal/services/upload"
)

// Services бизнес-логика, которую обслуживают маршруты.
type Services struct {
	Auth    *authservice.AuthService
	Place   *placeservice.PlaceService
	Booking *bookingservices.BookingService
	Upload  *uploadservice.UploadService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.Metrics,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	extractor := middlewarectx.NewExtractor(cfg.Auth)
	session := middlewarectx.NewSessionCookie(cfg.Auth, cfg.TokenTTL)

	// Открытые конечные точки
	r.Get("/test", health.New().ServeHTTP)
	r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
	r.Post("/login", login.New(logger, svc.Auth, session).ServeHTTP)
	r.Post("/logout", logout.New(session).ServeHTTP)
	r.Post("/upload-by-link", bylink.New(logger, svc.Upload).ServeHTTP)
	r.Post("/upload", photos.New(logger, svc.Upload, cfg.MaxMemory, cfg.MaxBodySize).ServeHTTP)
	r.Get("/places", placelist.New(logger, svc.Place).ServeHTTP)
	r.Get("/places/{id}", placeread.New(logger, svc.Place).ServeHTTP)

	r.With(middlewarectx.OptionalJWTMiddleware(svc.Auth, extractor, logger)).
		Get("/profile", profile.New(logger, svc.Auth).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(svc.Auth, extractor, logger))
		r.Post("/places", placecreate.New(logger, svc.Place).ServeHTTP)
		r.Put("/places", placeupdate.New(logger, svc.Place).ServeHTTP)
		r.Get("/user-places", listown.New(logger, svc.Place).ServeHTTP)
		r.Post("/bookings", bookingcreate.New(logger, svc.Booking).ServeHTTP)
		r.Get("/bookings", bookinglist.New(logger, svc.Booking).ServeHTTP)
	})

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(svc.Upload.Dir()))))
	r.Handle("/metrics", promhttp.Handler())
}
