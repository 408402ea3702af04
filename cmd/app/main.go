package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/policyfile"
	"marketplace/internal/adapters/out/redisstream"
	"marketplace/internal/core/domain/model/sourcing"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource it opens, so each failure returns through the
// deferred cleanup instead of exiting past it.
func run(args []string) error {
	configs, err := cmd.LoadConfig(args)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", configs.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := cmd.InitTracing(configs)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if tracingErr := shutdownTracing(shutdownCtx); tracingErr != nil {
			logger.Error("shutdown tracing", "error", tracingErr)
		}
	}()

	gormDB, err := cmd.OpenDatabase(configs)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	policies, err := loadPolicies(configs.PolicyFile)
	if err != nil {
		return fmt.Errorf("load policies: %w", err)
	}

	redisClient, err := redisstream.NewClient(ctx, configs.RedisAddr)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	publisher, err := redisstream.NewPublisher(redisClient, configs.RedisStream, configs.RedisStreamMaxLen)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}

	app := cmd.NewCompositionRoot(gormDB, policies, publisher)

	jobManager := app.CreateJobManager(configs, logger)
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}

	e := httpin.NewRouter(httpin.NewServer(app.CreateHTTPHandlers()), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		jobManager.StopAll()
		return e.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func loadPolicies(path string) (*sourcing.PolicyTable, error) {
	if path == "" {
		return sourcing.DefaultPolicyTable(), nil
	}
	return policyfile.Load(path)
}
