package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	appcfg "github.com/park285/league-keeper/internal/config"
	"github.com/park285/league-keeper/internal/httpapi"
	"github.com/park285/league-keeper/internal/leaguestore"
	"github.com/park285/league-keeper/internal/msgcat"
	"github.com/park285/league-keeper/internal/obslog"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	mgr, err := leaguestore.NewManager(cfg.RedisURL)
	if err != nil {
		log.Fatalf("league manager init error: %v", err)
	}

	var repo *leaguestore.Repository
	if cfg.DatabaseURL != "" {
		repo, err = leaguestore.NewRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("archive repo init error: %v", err)
		}
		mgr.AttachRepository(repo)
	}

	cat, err := msgcat.New(cfg.MsgTemplateDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	srv := httpapi.New(mgr, cat)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.ListenAddr)
	}()
	obslog.L().Info("league_keeper_start", zap.String("addr", cfg.ListenAddr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		obslog.L().Info("league_keeper_stop", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			obslog.L().Error("server error", zap.Error(err))
		}
	}

	_ = srv.Shutdown()
	_ = mgr.Close()
	if repo != nil {
		_ = repo.Close()
	}
}
