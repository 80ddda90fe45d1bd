package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/sudo-hablu/chatter/internal/auth"
	"github.com/sudo-hablu/chatter/internal/config"
	"github.com/sudo-hablu/chatter/internal/conversation"
	"github.com/sudo-hablu/chatter/internal/directory"
	"github.com/sudo-hablu/chatter/internal/domain"
	"github.com/sudo-hablu/chatter/internal/handler"
	"github.com/sudo-hablu/chatter/internal/hub"
	"github.com/sudo-hablu/chatter/internal/kvstore"
	"github.com/sudo-hablu/chatter/internal/metrics"
	"github.com/sudo-hablu/chatter/internal/mockdata"
	"github.com/sudo-hablu/chatter/pkg/idgen"
	"github.com/sudo-hablu/chatter/pkg/log"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log)
	l := log.L()

	if err := run(cfg); err != nil {
		l.Fatal().Err(err).Msg("chatter stopped with error")
	}
	l.Info().Msg("chatter stopped")
}

func run(cfg *config.Config) error {
	l := log.L()
	clock := clockwork.NewRealClock()

	// Device storage
	store, err := kvstore.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	l.Info().Str("driver", cfg.Storage.Driver).Msg("storage ready")

	ids, err := idgen.New(cfg.IDs)
	if err != nil {
		store.Close()
		return fmt.Errorf("failed to create id generator: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// App state, read once at startup
	state := auth.NewState(auth.StateConfig{ProfileDelay: cfg.Auth.ProfileDelay}, store, clock)
	defer func() {
		if err := state.Close(); err != nil {
			l.Warn().Err(err).Msg("failed to close storage")
		}
	}()
	state.Load(ctx)

	verifier := auth.NewVerifier(auth.OTPConfig{
		CodeLength:  cfg.OTP.CodeLength,
		ResendAfter: cfg.OTP.ResendAfter,
		VerifyDelay: cfg.OTP.VerifyDelay,
		Expiry:      cfg.OTP.Expiry,
	}, clock, ids)

	seed := cfg.MockData.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	gen := mockdata.NewSeeded(seed, clock)
	dir := directory.New(cfg.Directory, gen)

	wsHub := hub.New(cfg.WebSocket)

	sim := conversation.NewSimulator(conversation.SimulatorConfig{
		SentDelay:  cfg.Simulator.SentDelay,
		ReplyDelay: cfg.Simulator.ReplyDelay,
	}, clock, gen.Reply)
	conversations := conversation.NewManager(
		conversation.ManagerConfig{HistorySize: cfg.Conversation.HistorySize},
		gen, dir, sim, ids, clock,
		func(e domain.Event) {
			metrics.ObserveEvent(e)
			wsHub.Publish(e)
		},
	)
	defer conversations.CloseAll()

	metrics.RegisterGauges(conversations.Count, wsHub.ClientCount)

	// Setup Gin router
	if !cfg.Log.Pretty {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), log.GinMiddleware(l), metrics.GinMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": conversations.Count()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.NewHandler(state, verifier, dir, conversations, wsHub, ids).RegisterRoutes(r)

	server := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		l.Info().
			Str("addr", server.Addr).
			Str("initial_screen", state.InitialScreen()).
			Uint64("mock_seed", seed).
			Msg("chatter listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			l.Warn().Err(err).Msg("server forced to shutdown")
		}
		return nil
	})

	return g.Wait()
}
