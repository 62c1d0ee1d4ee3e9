package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fix-manufacture-api/internal/client"
	"fix-manufacture-api/internal/config"
	"fix-manufacture-api/internal/logger"
	"fix-manufacture-api/internal/metrics"
	"fix-manufacture-api/internal/repository"
	"fix-manufacture-api/internal/server"
	"fix-manufacture-api/internal/service"
	"fix-manufacture-api/internal/token"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		log.Fatal("init database", zap.Error(err))
	}
	defer func() {
		if err := client.CloseDBClient(db); err != nil {
			log.Error("close database", zap.Error(err))
		}
	}()

	var paymentClient client.PaymentClient
	switch cfg.Payment.Provider {
	case "braintree":
		paymentClient = client.NewBraintreeClient(&cfg.BrainTree)
	default:
		paymentClient = client.NewPaypalClient(&cfg.Paypal)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewCollector(reg)

	partRepo := repository.NewPartRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	tokens := token.NewService(cfg.Auth.AccessTokenSecret, cfg.Auth.AccessTokenTTL)
	roles := service.NewRoleResolver(userRepo)

	services := server.Services{
		Catalog: service.NewCatalogService(partRepo, reviewRepo),
		Orders: service.NewOrderService(
			orderRepo,
			paymentRepo,
			service.DeletePolicy(cfg.Orders.DeletePaid),
			recorder,
			log,
		),
		Users:    service.NewUserService(userRepo, roles, tokens, log),
		Payments: service.NewPaymentService(paymentClient, cfg.Payment.Currency, log),
		Roles:    roles,
		Tokens:   tokens,
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(services, recorder, reg, log)

	log.Info("starting HTTP server",
		zap.String("addr", serverAddr),
		zap.String("environment", cfg.Environment.Name),
		zap.String("payment_provider", cfg.Payment.Provider),
	)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
}
