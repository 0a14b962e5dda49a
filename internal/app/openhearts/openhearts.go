// Package openhearts собирает и запускает HTTP-приложение платформы пожертвований.
package openhearts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/openhearts/openhearts/internal/cache"
	"github.com/openhearts/openhearts/internal/config"
	"github.com/openhearts/openhearts/internal/lib/jwt"
	"github.com/openhearts/openhearts/internal/migrations"
	"github.com/openhearts/openhearts/internal/obs"
	"github.com/openhearts/openhearts/internal/paymentprovider"
	"github.com/openhearts/openhearts/internal/rabbitmq"
	authservice "github.com/openhearts/openhearts/internal/services/auth"
	categoryservice "github.com/openhearts/openhearts/internal/services/category"
	donationservice "github.com/openhearts/openhearts/internal/services/donation"
	"github.com/openhearts/openhearts/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New создает приложение: подключает базу, применяет миграции, инициализирует
// кеш, брокер уведомлений и регистрирует маршруты. Недоступность брокера
// не фатальна: квитанции просто не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	obs.Init()

	var (
		conn      *amqp.Connection
		ch        *amqp.Channel
		publisher donationservice.ReceiptPublisher
	)
	conn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, donation receipts disabled", slog.Any("err", err))
		conn = nil
	} else {
		ch, err = rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			logger.Warn("failed to setup rabbitmq channel, donation receipts disabled", slog.Any("err", err))
			ch = nil
		} else {
			publisher = rabbitmq.NewNotificationPublisher(ch)
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	categoryService := categoryservice.NewCategoryService(db, cacheRedis, logger)
	donationService := donationservice.NewDonationService(db, cacheRedis, publisher, logger)
	providerClient := paymentprovider.NewClient(cfg.StripeSecretKey)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, categoryService, donationService, providerClient, cfg.StripeCurrency)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.ch != nil {
			if closeErr := a.ch.Close(); closeErr != nil {
				a.logger.Error("failed to close channel", slog.Any("err", closeErr))
			}
		}
		if a.conn != nil {
			if closeErr := a.conn.Close(); closeErr != nil {
				a.logger.Error("failed to close connection", slog.Any("err", closeErr))
			}
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
