package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ordering/cmd"
	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/in/http/auth"
	"ordering/internal/adapters/in/http/openapi"
	"ordering/internal/adapters/in/ws"
	"ordering/internal/adapters/out/fanout"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/metrics"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/ports"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger); err != nil {
		log.Fatalf("ordering stopped: %v", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return config
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}

	fees, err := cmd.LoadFeeSchedule(configs.FeeSchedulePath, configs.PartnerFee)
	if err != nil {
		return err
	}

	hub := ws.NewHub(logger)
	targets := []ports.OrderEventPublisher{hub}
	if brokers := configs.KafkaBrokers(); len(brokers) > 0 {
		producer, producerErr := kafka.NewOrderEventPublisher(brokers, configs.KafkaOrderChangedTopic)
		if producerErr != nil {
			return producerErr
		}
		defer func() {
			if closeErr := producer.Close(); closeErr != nil {
				logger.Error("close kafka producer", "error", closeErr)
			}
		}()
		targets = append(targets, producer)
	} else {
		logger.Warn("KAFKA_HOST is empty, order events go to the live feed only")
	}

	lifecycleMetrics := metrics.NewPrometheusLifecycleMetrics()
	app := cmd.NewCompositionRoot(configs, gormDB, fanout.NewPublisher(targets...), lifecycleMetrics, fees, logger)

	issuer, err := auth.NewIssuer(configs.JWTSecret, configs.TokenTTL)
	if err != nil {
		return err
	}
	contract, err := openapi.Load(ctx)
	if err != nil {
		return err
	}
	e, err := httpin.NewRouter(httpin.NewServer(app.CreateHTTPHandlers(), hub, logger), httpin.RouterConfig{
		Issuer:   issuer,
		Contract: contract,
		Metrics:  lifecycleMetrics.Handler(),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		return app.CreateJobManager().Run(gctx)
	})
	g.Go(func() error {
		logger.Info("http server listening", "port", configs.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
