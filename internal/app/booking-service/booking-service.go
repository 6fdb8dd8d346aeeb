package bookingservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/booking-service/internal/cache"
	"github.com/magabrotheeeer/booking-service/internal/config"
	"github.com/magabrotheeeer/booking-service/internal/lib/jwt"
	"github.com/magabrotheeeer/booking-service/internal/lib/password"
	"github.com/magabrotheeeer/booking-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	"github.com/magabrotheeeer/booking-service/internal/migrations"
	authservice "github.com/magabrotheeeer/booking-service/internal/services/auth"
	bookingservices "github.com/magabrotheeeer/booking-service/internal/services/booking"
	placeservice "github.com/magabrotheeeer/booking-service/internal/services/place"
	uploadservice "github.com/magabrotheeeer/booking-service/internal/services/upload"
	"github.com/magabrotheeeer/booking-service/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер вместе с ресурсами, которые нужно закрыть при остановке.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *storage.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

// New подключается к хранилищам, применяет миграции и собирает маршруты.
// Redis и RabbitMQ необязательны: без них сервис работает без кеша и без событий.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.StorageConnectionString, cfg.StorageTimeout)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		logger: logger,
		db:     db,
	}

	var placeCache placeservice.Cache
	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", sl.Err(err))
	} else {
		app.cache = cacheRedis
		placeCache = cacheRedis
	}

	var events bookingservices.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		if err := app.connectRabbit(ctx, cfg.RabbitMQ); err != nil {
			logger.Warn("rabbitmq unavailable, booking events disabled", sl.Err(err))
		} else {
			events = app.publisher
		}
	}

	uploads, err := uploadservice.NewUploadService(logger, cfg.Uploads, nil)
	if err != nil {
		app.close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	hasher := password.NewHasher(cfg.BcryptCost)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, Services{
		Auth:    authservice.NewAuthService(logger, db, hasher, jwtMaker),
		Place:   placeservice.NewPlaceService(db, placeCache, cfg.CacheTTL, logger),
		Booking: bookingservices.NewBookingService(db, events, logger),
		Upload:  uploads,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) connectRabbit(ctx context.Context, cfg config.RabbitMQ) error {
	conn, err := rabbitmq.Connect(ctx, cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	publisher, err := rabbitmq.NewPublisher(ch, cfg.Exchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}
	a.amqpConn = conn
	a.publisher = publisher
	return nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close amqp channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close amqp connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
