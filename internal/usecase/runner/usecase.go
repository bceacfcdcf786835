package runner

import (
	"context"
	"fmt"
	"time"

	"browser-actions/internal/application/port/input"
	"browser-actions/internal/application/port/output"
	"browser-actions/internal/domain/entity"
)

var _ input.ScriptRunner = (*UseCase)(nil)

type UseCase struct {
	commands input.CommandExecutor
	logger   output.LoggerPort
}

func New(commands input.CommandExecutor, logger output.LoggerPort) *UseCase {
	return &UseCase{
		commands: commands,
		logger:   logger,
	}
}

// Run executes the commands in order and stops at the first failure. The
// steps completed before the failure are returned alongside the error.
func (uc *UseCase) Run(ctx context.Context, commands []entity.CommandDescriptor) (*input.RunResult, error) {
	result := &input.RunResult{
		Steps: make([]entity.StepResult, 0, len(commands)),
	}

	for i, cmd := range commands {
		log := uc.logger.WithFields(map[string]any{
			"step":   i + 1,
			"action": cmd.Action.String(),
		})
		log.Info("Executing command")

		start := time.Now()
		value, err := uc.commands.Execute(ctx, cmd)
		elapsed := time.Since(start)
		if err != nil {
			log.Error("Command failed", "error", err, "duration", elapsed)
			return result, fmt.Errorf("step %d (%s): %w", i+1, cmd.Action, err)
		}

		log.Debug("Command completed", "duration", elapsed)
		result.Steps = append(result.Steps, entity.StepResult{
			Index:    i + 1,
			Action:   cmd.Action,
			Result:   value,
			Duration: elapsed,
		})
	}

	return result, nil
}
