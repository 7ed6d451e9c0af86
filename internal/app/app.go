package app

import (
	"context"
	"net/http"
	"time"

	googol "github.com/iwtcode/googolAdapter"
	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/internal/adapters/handlers"
	"github.com/iwtcode/googolAdapter/internal/config"
	"github.com/iwtcode/googolAdapter/internal/interfaces"
	"github.com/iwtcode/googolAdapter/internal/middleware/logging"
	"github.com/iwtcode/googolAdapter/internal/services/kafka"
	"github.com/iwtcode/googolAdapter/internal/services/motion_service"
	"github.com/iwtcode/googolAdapter/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		ControllerModule,
		ProducerModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	return logging.NewLogger(loggerCfg, "GoogolAdapterApp")
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

// ProvideController открывает и инициализирует плату. Ошибка инициализации
// останавливает запуск приложения.
func ProvideController(lc fx.Lifecycle, cfg *config.AppConfig, logger *logging.Logger) (interfaces.Controller, error) {
	logger.Info("Initializing GTS controller", "card", cfg.Controller.CardID, "backend", cfg.Controller.Backend)

	client, err := googol.New(cfg.Controller, gts.WithLogger(logger.Logrus().WithField("component", "gts")))
	if err != nil {
		logger.Error("FATAL: Failed to initialize GTS controller", "error", err)
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing GTS controller...")
			client.Close()
			return nil
		},
	})
	return client, nil
}

var ControllerModule = fx.Module("controller_module",
	fx.Provide(ProvideController),
)

var ProducerModule = fx.Module("producer_module",
	fx.Provide(kafka.NewKafkaProducer),
)

// ProvideMotionService создает сервис и останавливает его раньше платы и продюсера.
func ProvideMotionService(lc fx.Lifecycle, ctrl interfaces.Controller, producer interfaces.KafkaService, logger *logging.Logger) interfaces.MotionService {
	svc := motion_service.NewMotionService(ctrl, producer, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			svc.Shutdown()
			return producer.Close()
		},
	})
	return svc
}

var ServiceModule = fx.Module("service_module",
	fx.Provide(ProvideMotionService),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     h,
		ReadTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
