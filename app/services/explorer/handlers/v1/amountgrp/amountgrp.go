// Package amountgrp maintains the group of handlers for token amount math.
package amountgrp

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ardanlabs/explorer/business/web/errs"
	"github.com/ardanlabs/explorer/foundation/decimal"
	"github.com/ardanlabs/explorer/foundation/units"
	"github.com/ardanlabs/explorer/foundation/validate"
	"github.com/ardanlabs/explorer/foundation/web"
)

// maxPlaces bounds the decimal places a caller may ask for. It is wide enough
// for any 256 bit amount and keeps every request cheap.
const maxPlaces = 78

// Handlers manages the set of amount endpoints.
type Handlers struct {
	Token units.Token
}

// Calc performs a fixed-point calculation on the provided values.
func (h Handlers) Calc(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app AppCalc
	if err := web.Decode(r, &app); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(app); err != nil {
		return err
	}

	places := decimal.DefaultPlaces
	if app.Places != nil {
		places = *app.Places
	}

	if err := checkPlaces(places); err != nil {
		return err
	}

	d, err := decimal.Parse(app.Value, places, app.Rounding)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	var result decimal.Decimal
	switch app.Op {
	case "add":
		result, err = d.Add(app.Operand)
	case "sub":
		result, err = d.Sub(app.Operand)
	case "mul":
		result, err = d.Mul(app.Operand)
	case "div":
		result, err = d.Div(app.Operand)
	}

	if err != nil {
		if errors.Is(err, decimal.ErrInvalidFormat) || errors.Is(err, decimal.ErrDivisionByZero) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return fmt.Errorf("calc: %s: %w", app.Op, err)
	}

	resp := AppCalcResult{
		Result:   result,
		Places:   result.Places(),
		Rounding: result.Rounding(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Format renders an amount of base units for display.
func (h Handlers) Format(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	base := web.Param(r, "base")

	amount, ok := new(big.Int).SetString(base, 10)
	if !ok {
		return errs.NewTrusted(fmt.Errorf("invalid base amount %q", base), http.StatusBadRequest)
	}

	return web.Respond(ctx, w, h.toAppAmount(amount), http.StatusOK)
}

// Parse converts a display amount into base units.
func (h Handlers) Parse(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	amount, err := h.Token.ToBase(web.Param(r, "display"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return web.Respond(ctx, w, h.toAppAmount(amount), http.StatusOK)
}

// Claimed computes the percentage of the total supply that was claimed.
func (h Handlers) Claimed(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	qry := r.URL.Query()

	claimed, ok := new(big.Int).SetString(qry.Get("claimed"), 10)
	if !ok {
		return errs.NewTrusted(fmt.Errorf("invalid claimed amount %q", qry.Get("claimed")), http.StatusBadRequest)
	}

	total, ok := new(big.Int).SetString(qry.Get("total"), 10)
	if !ok {
		return errs.NewTrusted(fmt.Errorf("invalid total amount %q", qry.Get("total")), http.StatusBadRequest)
	}

	places := decimal.DefaultPlaces
	if s := qry.Get("places"); s != "" {
		var err error
		places, err = strconv.Atoi(s)
		if err != nil {
			return errs.NewTrusted(fmt.Errorf("invalid places %q", s), http.StatusBadRequest)
		}
	}

	if err := checkPlaces(places); err != nil {
		return err
	}

	percent, err := units.Percentage(claimed, total, places)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := AppClaimed{
		Claimed:   claimed.String(),
		Total:     total.String(),
		Percent:   percent,
		Formatted: units.FormatPercentage(percent),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

func checkPlaces(places int) error {
	if places < 0 || places > maxPlaces {
		return errs.NewTrusted(fmt.Errorf("places must be between 0 and %d", maxPlaces), http.StatusBadRequest)
	}
	return nil
}

func (h Handlers) toAppAmount(amount *big.Int) AppAmount {
	return AppAmount{
		Base:      amount.String(),
		Display:   h.Token.FromBase(amount).String(),
		Formatted: h.Token.Format(amount),
		Magnitude: units.Magnitude(amount),
		Unit:      h.Token.Unit,
		Subunit:   h.Token.Subunit,
	}
}
