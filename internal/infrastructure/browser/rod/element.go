package rod

import (
	"context"

	"browser-actions/internal/application/port/output"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

var _ output.ElementPort = (*element)(nil)

type element struct {
	el *rod.Element
}

func (e *element) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *element) Clear(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Page().Context(ctx).Keyboard.Type(input.Backspace)
}

func (e *element) SendCharacter(ctx context.Context, c rune) error {
	return e.el.Context(ctx).Input(string(c))
}
