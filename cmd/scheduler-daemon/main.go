// scheduler-daemon — фоновый планировщик и HTTP API задач.
//
// Демон:
//   - Опрашивает storage на готовые к активации задачи (GetReadyTasks)
//   - Выполняет их через зарегистрированные ActionExecutor'ы с retry
//     и exponential backoff
//   - Публикует send_bot_message во внешний чат-фронтенд через RabbitMQ
//     (опционально — без него работает в режиме "только log-действия")
//   - Предоставляет HTTP API для отправки и инспекции задач
//
// Экземпляр один — at-most-once-in-flight гарантируется одним процессом,
// опрашивающим общее хранилище (см. internal/scheduler).
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/tasksched/internal/api"
	"github.com/shaiso/tasksched/internal/config"
	"github.com/shaiso/tasksched/internal/executors"
	"github.com/shaiso/tasksched/internal/migrate"
	"github.com/shaiso/tasksched/internal/mq"
	"github.com/shaiso/tasksched/internal/scheduler"
	"github.com/shaiso/tasksched/internal/storage"
	"github.com/shaiso/tasksched/internal/telemetry"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Optional path to a configuration file")
	flag.Parse()

	logger := telemetry.SetupLogger()
	logger.Info("starting scheduler-daemon")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	pool, err := storage.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	store := storage.NewPostgres(pool)

	registry := scheduler.NewRegistry()
	registry.Register(executors.NewLog(logger))

	var mqConn *mq.Connection
	if cfg.RabbitMQURL != "" {
		mqConn, err = mq.NewConnection(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("RabbitMQ not available, send_bot_message action is unsupported", "error", err)
		} else {
			defer mqConn.Close()
			logger.Info("RabbitMQ connected")

			if err := mq.SetupTopology(ctx, mqConn); err != nil {
				logger.Warn("failed to setup mq topology", "error", err)
			}

			publisher := mq.NewPublisher(mqConn, logger)
			registry.Register(executors.NewBotMessage(publisher))
		}
	} else {
		logger.Info("RABBITMQ_URL not set, send_bot_message action is unsupported")
	}

	sched := scheduler.New(store, registry, logger).WithCheckInterval(cfg.CheckInterval)

	handler := api.NewHandler(api.Config{
		Scheduler: sched,
		Storage:   store,
		Logger:    logger,
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := http.ListenAndServe(cfg.HTTPAddr, mux); err != nil {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	<-sched.ShutdownOnSignal()
	logger.Info("scheduler-daemon stopped")
}
