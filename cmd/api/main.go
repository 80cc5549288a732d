package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corebank/ledger-service/internal/config"
	"github.com/corebank/ledger-service/internal/handler"
	"github.com/corebank/ledger-service/internal/ledger"
	"github.com/corebank/ledger-service/internal/logging"
	"github.com/corebank/ledger-service/internal/middleware"
	"github.com/corebank/ledger-service/internal/repository"
	"github.com/corebank/ledger-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("ledger-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transactions := repository.NewTransactionRepository(db)
	accounts := repository.NewAccountRepository(db)
	customers := repository.NewCustomerRepository(db)

	querier := ledger.NewStateQuerier(transactions)
	creator := ledger.NewCreator(transactions)
	transferer := ledger.NewTransferer(querier, creator)

	customerSvc := service.NewCustomerService(customers)
	accountSvc := service.NewAccountService(accounts, customers, transactions, querier)

	customerHandler := handler.NewCustomerHandler(customerSvc)
	accountHandler := handler.NewAccountHandler(accountSvc)
	transferHandler := handler.NewTransferHandler(transferer, accounts)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("POST /api/v1/customers", customerHandler.Create)
	mux.HandleFunc("GET /api/v1/customers/{customerID}", customerHandler.Get)
	mux.HandleFunc("POST /api/v1/customers/{customerID}/accounts", accountHandler.Create)
	mux.HandleFunc("GET /api/v1/customers/{customerID}/accounts", accountHandler.List)
	mux.HandleFunc("GET /api/v1/accounts/{accountID}", accountHandler.GetState)
	mux.HandleFunc("GET /api/v1/accounts/{accountID}/transactions", accountHandler.ListTransactions)
	mux.HandleFunc("POST /api/v1/accounts/{accountID}/deposits", accountHandler.Deposit)
	mux.HandleFunc("POST /api/v1/transfers", transferHandler.Create)

	root := middleware.RequestID(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
