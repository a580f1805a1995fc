package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"github.com/flymeaway/flight-price-scanner/internal/app/config"
	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
	"github.com/flymeaway/flight-price-scanner/internal/app/endpoints"
	"github.com/flymeaway/flight-price-scanner/internal/app/service"
	"github.com/flymeaway/flight-price-scanner/internal/app/transport"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/airports"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/amadeus"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/history"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/logger"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/scanner"
)

func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	endpts := makeEndpoints(ctx, &cfg)
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config) endpoints.Endpoints {
	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	airportIndex, err := airports.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load airport dataset", slog.String("error", err.Error()))
		panic(err)
	}

	historyStore, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open history store", slog.String("error", err.Error()))
		panic(err)
	}

	return endpoints.Endpoints{
		ScannerEndpoint: makeScannerEndpoint(cfg, redisClient, historyStore),
		AirportEndpoint: endpoints.MakeAirportEndpoint(service.NewAirportService(airportIndex)),
	}
}

func makeScannerEndpoint(cfg *config.Config, redisClient *redis.Client,
	historyStore *history.Store) endpoints.ScannerEndpoint {
	client := amadeus.NewClient(amadeus.Config{
		BaseURL:        cfg.Amadeus.BaseURL,
		APIKey:         cfg.Amadeus.APIKey,
		APISecret:      cfg.Amadeus.APISecret,
		RequestTimeout: cfg.Amadeus.RequestTimeout,
		MaxRetries:     cfg.Amadeus.MaxRetries,
		RetryBudget:    cfg.Amadeus.RetryBudget,
		RateLimitRPS:   cfg.Amadeus.RateLimitRPS,
		Limiter:        redis_rate.NewLimiter(redisClient),
	})

	engine := scanner.New(client, client, scanner.Options{
		Concurrency:  cfg.Scanner.Concurrency,
		PaceInterval: cfg.Scanner.PaceInterval,
		Cooldown:     cfg.Scanner.Cooldown,
		OnProgress: func(p scanner.Progress) {
			slog.Debug("scan progress",
				slog.Int("completed", p.Completed),
				slog.Int("total", p.Total))
		},
		OnCooldown: func(d time.Duration) {
			// a silent minute is indistinguishable from a hang
			slog.Warn("rate limit cooldown, pausing dispatch",
				slog.Duration("cooldown", d))
		},
	})

	scanCache := scanner.NewScanCache(redisClient)

	scannerService := service.NewScannerService(engine, scanCache, historyStore,
		cfg.Scanner.CacheExpiration, cfg.Scanner.LockTimeout)

	return endpoints.MakeScannerEndpoint(scannerService)
}
