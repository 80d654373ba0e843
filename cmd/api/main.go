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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/MrJamesThe3rd/billbook/internal/app"
	"github.com/MrJamesThe3rd/billbook/internal/auth"
	"github.com/MrJamesThe3rd/billbook/internal/config"
	"github.com/MrJamesThe3rd/billbook/internal/database"
	billbookHttp "github.com/MrJamesThe3rd/billbook/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/billbook/internal/http/analytics"
	customerHandler "github.com/MrJamesThe3rd/billbook/internal/http/customer"
	documentHandler "github.com/MrJamesThe3rd/billbook/internal/http/document"
	exportHandler "github.com/MrJamesThe3rd/billbook/internal/http/export"
	productHandler "github.com/MrJamesThe3rd/billbook/internal/http/product"
	profileHandler "github.com/MrJamesThe3rd/billbook/internal/http/profile"
	"github.com/MrJamesThe3rd/billbook/internal/logger"
	"github.com/MrJamesThe3rd/billbook/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Setup(cfg.Logging()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		applied, err := database.Migrate(ctx, db)
		if err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		log.Info().Strs("applied", applied).Msg("migrations complete")
	}

	issuer, err := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	svc, err := app.New(cfg, db)
	if err != nil {
		return err
	}

	m := metrics.New(metrics.Config{ServiceName: "billbook", Environment: cfg.App.Environment})

	router := billbookHttp.New(billbookHttp.Options{
		Logger:         logger.WithComponent("http"),
		Verifier:       issuer,
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	}, billbookHttp.Handlers{
		Documents: documentHandler.NewHandler(svc.Documents, m, cfg.Share.BaseURL),
		Products:  productHandler.NewHandler(svc.Catalog, svc.Importer),
		Customers: customerHandler.NewHandler(svc.Customers),
		Profile:   profileHandler.NewHandler(svc.Profiles),
		Analytics: analyticsHandler.NewHandler(svc.Analytics),
		Export:    exportHandler.NewHandler(svc.Export),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
