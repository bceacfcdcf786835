package input

import (
	"context"

	"browser-actions/internal/domain/entity"
)

type RunResult struct {
	Steps []entity.StepResult
}

type ScriptRunner interface {
	Run(ctx context.Context, commands []entity.CommandDescriptor) (*RunResult, error)
}
