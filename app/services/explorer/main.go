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

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/explorer/app/services/explorer/handlers"
	"github.com/ardanlabs/explorer/business/core/stats"
	statsdb "github.com/ardanlabs/explorer/business/core/stats/db"
	"github.com/ardanlabs/explorer/business/sys/database"
	"github.com/ardanlabs/explorer/business/sys/metrics"
	"github.com/ardanlabs/explorer/foundation/events"
	"github.com/ardanlabs/explorer/foundation/feed"
	"github.com/ardanlabs/explorer/foundation/logger"
	"github.com/ardanlabs/explorer/foundation/units"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("EXPLORER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			APIHost         string        `conf:"default:0.0.0.0:8080"`
			CorsOrigin      string        `conf:"default:*"`
		}
		Feed struct {
			URL        string        `conf:"default:ws://0.0.0.0:9080/v1/feed"`
			Topics     []string      `conf:"default:block;milestone"`
			MaxBackoff time.Duration `conf:"default:30s"`
		}
		DB struct {
			Path         string `conf:"default:zexplorer/explorer.db"`
			MaxOpenConns int    `conf:"default:1"`
		}
		Token struct {
			Name string `conf:"default:shimmer"`
		}
		Stats struct {
			Window     int           `conf:"default:100"`
			RatePeriod time.Duration `conf:"default:10s"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Values can be overridden with EXPLORER_* environment variables or flags.
	const prefix = "EXPLORER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	token, err := units.Lookup(cfg.Token.Name)
	if err != nil {
		return fmt.Errorf("loading token: %w", err)
	}
	log.Infow("startup", "status", "token", "name", token.Name, "unit", token.Unit, "decimals", token.Decimals)

	// =========================================================================
	// Database Support

	log.Infow("startup", "status", "initializing database support", "path", cfg.DB.Path)

	db, err := database.Open(database.Config{
		Path:         cfg.DB.Path,
		MaxOpenConns: cfg.DB.MaxOpenConns,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer func() {
		log.Infow("shutdown", "status", "stopping database support", "path", cfg.DB.Path)
		db.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrating db: %w", err)
	}

	// =========================================================================
	// Statistics Support

	// The events package fans messages out to every websocket client that is
	// connected into the system.
	evts := events.New()

	statsCore := stats.NewCore(stats.Config{
		Log:        log,
		Storer:     statsdb.NewStore(log, db, stats.PercentPlaces),
		Sender:     evts,
		Token:      token,
		Window:     cfg.Stats.Window,
		RatePeriod: cfg.Stats.RatePeriod,
	})

	if err := statsCore.LoadWindow(ctx); err != nil {
		return fmt.Errorf("loading milestone window: %w", err)
	}

	// =========================================================================
	// Feed Support

	// Feed connection state changes are logged outside of any request.
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
	}

	handler := func(ctx context.Context, evt feed.Event) error {
		metrics.AddFeedEvents()

		switch evt.Type {
		case feed.TypeBlock:
			return statsCore.ApplyBlock(ctx, *evt.Block)

		case feed.TypeMilestone:
			_, err := statsCore.ApplyMilestone(ctx, *evt.Milestone)
			return err
		}

		return nil
	}

	client, err := feed.New(feed.Config{
		URL:        cfg.Feed.URL,
		Topics:     cfg.Feed.Topics,
		Handler:    handler,
		EvHandler:  ev,
		MaxBackoff: cfg.Feed.MaxBackoff,
	})
	if err != nil {
		return fmt.Errorf("constructing feed client: %w", err)
	}

	feedCtx, feedCancel := context.WithCancel(context.Background())
	feedDone := make(chan struct{})

	go func() {
		defer close(feedDone)
		log.Infow("startup", "status", "feed client started", "url", cfg.Feed.URL)
		if err := client.Run(feedCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("shutdown", "status", "feed client stopped", "ERROR", err)
		}
	}()

	defer func() {
		log.Infow("shutdown", "status", "stopping feed client")
		feedCancel()
		<-feedDone
	}()

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	debugMux := handlers.DebugMux(build, log, db)

	// The debug listener is not part of the graceful shutdown.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing V1 API support")

	apiMux := handlers.APIMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Stats:    statsCore,
		Evts:     evts,
		Token:    token,
		Origin:   cfg.Web.CorsOrigin,
	})

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Closing the subscriber channels ends every open /v1/events socket.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
