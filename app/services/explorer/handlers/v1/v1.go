// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/explorer/app/services/explorer/handlers/v1/amountgrp"
	"github.com/ardanlabs/explorer/app/services/explorer/handlers/v1/statsgrp"
	"github.com/ardanlabs/explorer/business/core/stats"
	"github.com/ardanlabs/explorer/foundation/events"
	"github.com/ardanlabs/explorer/foundation/units"
	"github.com/ardanlabs/explorer/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	Stats *stats.Core
	Evts  *events.Events
	Token units.Token
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	amt := amountgrp.Handlers{
		Token: cfg.Token,
	}

	app.Handle(http.MethodPost, version, "/amounts/calc", amt.Calc)
	app.Handle(http.MethodGet, version, "/amounts/format/:base", amt.Format)
	app.Handle(http.MethodGet, version, "/amounts/parse/:display", amt.Parse)
	app.Handle(http.MethodGet, version, "/supply/claimed", amt.Claimed)

	sts := statsgrp.Handlers{
		Log:   cfg.Log,
		Stats: cfg.Stats,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/stats", sts.Summary)
	app.Handle(http.MethodGet, version, "/milestones/latest", sts.Latest)
	app.Handle(http.MethodGet, version, "/milestones/list", sts.Query)
	app.Handle(http.MethodGet, version, "/milestones/index/:index", sts.QueryByIndex)
	app.Handle(http.MethodGet, version, "/events", sts.Events)
}
