package amountgrp

import "github.com/ardanlabs/explorer/foundation/decimal"

// AppCalc is the request for a decimal calculation.
type AppCalc struct {
	Value    string `json:"value" validate:"required"`
	Op       string `json:"op" validate:"required,oneof=add sub mul div"`
	Operand  string `json:"operand" validate:"required"`
	Places   *int   `json:"places"`
	Rounding bool   `json:"rounding"`
}

// AppCalcResult is the result of a decimal calculation.
type AppCalcResult struct {
	Result   decimal.Decimal `json:"result"`
	Places   int             `json:"places"`
	Rounding bool            `json:"rounding"`
}

// AppAmount is an amount in base units with its display forms.
type AppAmount struct {
	Base      string `json:"base"`
	Display   string `json:"display"`
	Formatted string `json:"formatted"`
	Magnitude string `json:"magnitude"`
	Unit      string `json:"unit"`
	Subunit   string `json:"subunit"`
}

// AppClaimed is the share of the total supply that has been claimed.
type AppClaimed struct {
	Claimed   string          `json:"claimed"`
	Total     string          `json:"total"`
	Percent   decimal.Decimal `json:"percent"`
	Formatted string          `json:"formatted"`
}
