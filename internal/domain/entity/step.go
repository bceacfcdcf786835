package entity

import "time"

// StepResult records one executed command of a script run.
type StepResult struct {
	Index    int           `json:"index"`
	Action   ActionKind    `json:"action"`
	Result   any           `json:"result,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}
