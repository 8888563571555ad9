// Package handlers manages the different versions of the API.
package handlers

import (
	"context"
	"database/sql"
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/ardanlabs/explorer/app/services/explorer/handlers/debug/checkgrp"
	v1 "github.com/ardanlabs/explorer/app/services/explorer/handlers/v1"
	"github.com/ardanlabs/explorer/business/core/stats"
	"github.com/ardanlabs/explorer/business/web/mid"
	"github.com/ardanlabs/explorer/foundation/events"
	"github.com/ardanlabs/explorer/foundation/units"
	"github.com/ardanlabs/explorer/foundation/web"
	"go.uber.org/zap"
)

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown chan os.Signal
	Log      *zap.SugaredLogger
	Stats    *stats.Core
	Evts     *events.Events
	Token    units.Token
	Origin   string
}

// APIMux constructs a http.Handler with all application routes defined.
func APIMux(cfg MuxConfig) *web.App {
	origin := cfg.Origin
	if origin == "" {
		origin = "*"
	}

	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Cors(origin),
		mid.Panics(),
	)

	// Browser clients on other origins send a preflight before POST calc.
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*", h, mid.Cors(origin))

	v1.Routes(app, v1.Config{
		Log:   cfg.Log,
		Stats: cfg.Stats,
		Evts:  cfg.Evts,
		Token: cfg.Token,
	})

	return app
}

// DebugStandardLibraryMux registers the pprof and expvar endpoints on a new
// mux instead of http.DefaultServeMux, so nothing a dependency registers
// globally is exposed.
func DebugStandardLibraryMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	return mux
}

// DebugMux adds the readiness and liveness checks to the standard library
// debug routes. Readiness depends on the statistics database.
func DebugMux(build string, log *zap.SugaredLogger, db *sql.DB) http.Handler {
	mux := DebugStandardLibraryMux()

	cgh := checkgrp.Handlers{
		Build: build,
		Log:   log,
		DB:    db,
	}
	mux.HandleFunc("/debug/readiness", cgh.Readiness)
	mux.HandleFunc("/debug/liveness", cgh.Liveness)

	return mux
}
