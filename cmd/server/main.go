package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/Poker/internal/adapters/http"
	wssignal "github.com/dkeye/Poker/internal/adapters/signal"
	"github.com/dkeye/Poker/internal/app"
	"github.com/dkeye/Poker/internal/app/orch"
	"github.com/dkeye/Poker/internal/config"
	"github.com/dkeye/Poker/internal/core"
	"github.com/dkeye/Poker/internal/domain"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config, using defaults")
		cfg = config.Default()
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	strategy, err := domain.ParseStrategy(cfg.Strategy)
	if err != nil {
		log.Fatal().Err(err).Str("strategy", cfg.Strategy).Msg("bad config")
	}
	disconnect, err := domain.ParseDisconnectPolicy(cfg.DisconnectPolicy)
	if err != nil {
		log.Fatal().Err(err).Str("disconnect_policy", cfg.DisconnectPolicy).Msg("bad config")
	}
	policy, err := app.ParsePolicy(cfg.Backpressure)
	if err != nil {
		log.Fatal().Err(err).Str("backpressure", cfg.Backpressure).Msg("bad config")
	}

	manager := app.NewRoomManager(core.RoomOptions{Strategy: strategy, Disconnect: disconnect})
	reg := app.NewRegistry()

	o := &orch.Orchestrator{
		Registry: reg,
		Rooms:    manager,
		Policy:   policy,
		Stats:    app.NewStats(),
		Codec:    wssignal.Codec{},
	}

	r := router.SetupRouter(ctx, cfg, o)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Str("strategy", string(strategy)).Msg("Poker server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
