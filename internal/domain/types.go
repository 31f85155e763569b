package domain

import "time"

// Evaluation is one recorded date math evaluation. Failed evaluations are
// recorded too, with Status set to "error" and Result left empty.
type Evaluation struct {
	ID          string     `json:"id" yaml:"id"`
	Input       string     `json:"input" yaml:"input"`
	TZ          string     `json:"tz" yaml:"tz"`
	Anchor      *time.Time `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	Result      *time.Time `json:"result,omitempty" yaml:"result,omitempty"`
	Status      EvalStatus `json:"status" yaml:"status"`
	Error       string     `json:"error,omitempty" yaml:"error,omitempty"`
	EvaluatedAt time.Time  `json:"evaluated_at" yaml:"evaluated_at"`
}

type EvalStatus string

const (
	EvalStatusOK    EvalStatus = "ok"
	EvalStatusError EvalStatus = "error"
)

// EvalRequest asks for one evaluation. Now pins the anchor for NOW-form
// inputs; TZ overrides the service's default zone.
type EvalRequest struct {
	Input string     `json:"input"`
	Now   *time.Time `json:"now,omitempty"`
	TZ    string     `json:"tz,omitempty"`
}

// UnitAlias is one entry of the unit table as exposed over the API.
type UnitAlias struct {
	Alias string `json:"alias" yaml:"alias"`
	Unit  string `json:"unit" yaml:"unit"`
}
