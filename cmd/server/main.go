// @title                       Patient Portal API
// @version                     1.0
// @description                 User registration, login and patient intake.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"github.com/rs/zerolog"

	"github.com/carehub/patient-portal/internal/api"
	"github.com/carehub/patient-portal/internal/core/ports"
	"github.com/carehub/patient-portal/internal/core/service"
	"github.com/carehub/patient-portal/internal/infrastructure/db/memory"
	mongostore "github.com/carehub/patient-portal/internal/infrastructure/db/mongo"
	pgstore "github.com/carehub/patient-portal/internal/infrastructure/db/postgres"
	redisstore "github.com/carehub/patient-portal/internal/infrastructure/db/redis"
	"github.com/carehub/patient-portal/internal/infrastructure/http/handlers"
	"github.com/carehub/patient-portal/internal/pkg/config"
	"github.com/carehub/patient-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "patient-portal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "patient-portal",
	})

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	deps := api.Deps{
		JWTSecret:        cfg.JWTSecret,
		ProtectDashboard: cfg.ProtectDashboard,
		SecureCookie:     !cfg.IsDevelopment(),
		LoginRate:        cfg.LoginRate,
		LoginBurst:       cfg.LoginBurst,
		Readiness:        st.readiness,
		Logger:           logger.Component("http"),
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		deps.Guard = redisstore.NewSubmissionGuard(rdb, 0)
		deps.Readiness = append(deps.Readiness, handlers.Dependency{
			Name: "redis",
			Ping: redisstore.Pinger(rdb),
		})
	}

	passwords, err := service.NewPasswordEncoder(cfg.PasswordScheme)
	if err != nil {
		return err
	}
	deps.Accounts = service.NewAccountService(st.accounts, passwords, cfg.JWTSecret, cfg.TokenTTL, logger.Component("accounts"))
	deps.Patients = service.NewPatientService(st.patients, logger.Component("patients"))

	e := api.NewRouter(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Bool("submission_guard", deps.Guard != nil).
			Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

type stores struct {
	accounts  ports.AccountStore
	patients  ports.PatientStore
	readiness []handlers.Dependency
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		return &stores{
			accounts:  pgstore.NewAccountStore(pool),
			patients:  pgstore.NewPatientStore(pool),
			readiness: []handlers.Dependency{{Name: "postgres", Ping: pool.Ping}},
			close:     pool.Close,
		}, nil

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return &stores{
			accounts: mongostore.NewAccountStore(db),
			patients: mongostore.NewPatientStore(db),
			readiness: []handlers.Dependency{{
				Name: "mongo",
				Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
			}},
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	default:
		log.Warn().Msg("using in-memory stores; data is lost on restart")
		return &stores{
			accounts: memory.NewAccountStore(),
			patients: memory.NewPatientStore(),
			close:    func() {},
		}, nil
	}
}
