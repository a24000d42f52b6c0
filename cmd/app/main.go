package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"prtracker/internal/app/config"
	httpapi "prtracker/internal/app/http"
	"prtracker/internal/app/http/handler"
	"prtracker/internal/domain/admin"
	"prtracker/internal/domain/member"
	"prtracker/internal/domain/project"
	"prtracker/internal/domain/pullrequest"
	"prtracker/internal/domain/token"
	"prtracker/internal/infrastructure/async"
	"prtracker/internal/infrastructure/db/sqlite"
	"prtracker/internal/infrastructure/github"
	"prtracker/internal/infrastructure/keychain"
	"prtracker/internal/infrastructure/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("db ping error", zap.Error(err))
	}

	if err := sqlite.Migrate(db); err != nil {
		log.Fatal("db migrate error", zap.Error(err))
	}
	log.Info("database ready", zap.String("path", cfg.DatabasePath))

	uow := sqlite.NewTxManager(db)

	eventBus := async.NewAsyncEventBus(ctx, 4, log)
	defer eventBus.Close()

	projectRepo := sqlite.NewProjectRepository(db)
	memberRepo := sqlite.NewMemberRepository(db)
	prRepo := sqlite.NewPRRepository(db)
	historyRepo := sqlite.NewHistoryRepository(db)
	maintenance := sqlite.NewMaintenance(db)

	tokenStore := keychain.NewStore()
	ghClient := github.NewClient(log)

	projectSvc := project.NewService(uow, projectRepo, prRepo, eventBus)
	memberSvc := member.NewService(uow, memberRepo, eventBus)
	tokenSvc := token.NewService(tokenStore, ghClient, eventBus)
	prSvc := pullrequest.NewService(uow, prRepo, historyRepo, memberSvc, projectRepo, ghClient, storedToken{tokenSvc}, eventBus)
	adminSvc := admin.NewService(uow, maintenance, eventBus)

	h := handler.New(projectSvc, prSvc, tokenSvc, adminSvc, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

// storedToken adapts the token service to the ingest fallback lookup.
type storedToken struct {
	svc token.Service
}

func (s storedToken) Get(ctx context.Context) (string, bool, error) {
	return s.svc.Get(ctx)
}
