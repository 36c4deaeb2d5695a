package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/eduverse/backend/api/handler"
	"github.com/eduverse/backend/internal/config"
	"github.com/eduverse/backend/internal/infrastructure/kvstore"
	"github.com/eduverse/backend/internal/infrastructure/monitor"
	"github.com/eduverse/backend/internal/middleware"
	"github.com/eduverse/backend/internal/router"
	"github.com/eduverse/backend/internal/schema"
	"github.com/eduverse/backend/internal/services/lifecycle"
	"github.com/eduverse/backend/pkg/httpcontext"
	"github.com/eduverse/backend/pkg/logger"
	kvRepo "github.com/eduverse/backend/repository/kv"
	mailboxUC "github.com/eduverse/backend/usecase/mailbox"
	"github.com/eduverse/backend/usecase/onboarding"
	sessionUC "github.com/eduverse/backend/usecase/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := kvstore.OpenBolt(cfg.Store.Path, cfg.Store.Bucket)
	if err != nil {
		zapLogger.Fatal("failed to open key-value store", zap.Error(err))
	}
	manager.Register("kvstore", func(ctx context.Context) error {
		return store.Close()
	})

	mon := monitor.New(store, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	credentialStore := kvRepo.NewCredentialStore(store, zapLogger)
	mailboxRepo := kvRepo.NewMailboxRepository(store, zapLogger)

	registry := schema.New()
	sessions := sessionUC.New(credentialStore, registry, zapLogger, cfg.Auth.SimulatedLatency)

	// Adopt any persisted session before accepting traffic, so an existing
	// session never appears unauthenticated.
	if err := sessions.Restore(appCtx); err != nil {
		zapLogger.Fatal("session restore failed", zap.Error(err))
	}

	flow := onboarding.New(sessions, zapLogger)
	mailbox := mailboxUC.New(mailboxRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:          apiHandler.NewAuthHandler(sessions, flow, ctxAdapter, zapLogger),
		Onboarding:    apiHandler.NewOnboardingHandler(flow, ctxAdapter, zapLogger),
		Notifications: apiHandler.NewNotificationHandler(mailbox, sessions, ctxAdapter, zapLogger),
		Health:        apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	sessionGuard := middleware.RequireSession(sessions, zapLogger)
	r := router.New(handlers, sessionGuard)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
