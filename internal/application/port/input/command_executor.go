package input

import (
	"context"

	"browser-actions/internal/domain/entity"
)

type CommandExecutor interface {
	Execute(ctx context.Context, cmd entity.CommandDescriptor) (any, error)
	SendKeys(ctx context.Context, text string) error
	SendAction(ctx context.Context, action string) error
}
