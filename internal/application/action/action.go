package action

import (
	"context"
	"fmt"
	"math"
	"time"

	"browser-actions/internal/application/port/output"
	"browser-actions/internal/domain/entity"
)

// Action is one browser interaction. Instances are built per command and
// dropped after Execute returns.
type Action interface {
	Execute(ctx context.Context) (any, error)
}

var (
	_ Action = (*Click)(nil)
	_ Action = (*Write)(nil)
	_ Action = (*ExecuteScript)(nil)
	_ Action = (*Navigate)(nil)
	_ Action = (*Scroll)(nil)
)

const (
	scrollDownScript = `
		const scrollAmount = (document.body.scrollHeight - window.innerHeight) * arguments[0];
		window.scrollTo({ top: scrollAmount, behavior: 'smooth' });
	`
	scrollTopScript = `
		const scrollAmount = (document.body.scrollHeight - window.innerHeight) * arguments[0];
		window.scrollTo({ top: document.body.scrollHeight - scrollAmount, behavior: 'smooth' });
	`
)

// New builds the action for already parsed params. el must be non-nil for
// Targeted params.
func New(p Params, driver output.DriverPort, el output.ElementPort) (Action, error) {
	switch p := p.(type) {
	case ClickParams:
		if el == nil {
			return nil, fmt.Errorf("%w: click needs an element", entity.ErrInvalidArgument)
		}
		return NewClick(el, p.Delay), nil
	case WriteParams:
		if el == nil {
			return nil, fmt.Errorf("%w: write needs an element", entity.ErrInvalidArgument)
		}
		return NewWrite(el, p.Text, p.Delay), nil
	case ScriptParams:
		return NewExecuteScript(driver, p.Source, p.Element), nil
	case NavigateParams:
		return NewNavigate(driver, p.URL), nil
	case ScrollParams:
		return NewScroll(driver, p.To, p.Percent), nil
	}
	return nil, fmt.Errorf("%w: no action for %T", entity.ErrInvalidAction, p)
}

type Click struct {
	element output.ElementPort
	delay   time.Duration
}

func NewClick(el output.ElementPort, delay time.Duration) *Click {
	return &Click{element: el, delay: delay}
}

func (a *Click) Execute(ctx context.Context) (any, error) {
	if err := Sleep(ctx, a.delay); err != nil {
		return nil, err
	}
	return nil, a.element.Click(ctx)
}

type Write struct {
	element output.ElementPort
	text    string
	delay   time.Duration
}

func NewWrite(el output.ElementPort, text string, delay time.Duration) *Write {
	return &Write{element: el, text: text, delay: delay}
}

// Execute clears the field once and types the text rune by rune. A failure
// midway leaves the field partially typed.
func (a *Write) Execute(ctx context.Context) (any, error) {
	if err := a.element.Clear(ctx); err != nil {
		return nil, err
	}
	for _, c := range a.text {
		if err := a.element.SendCharacter(ctx, c); err != nil {
			return nil, err
		}
		if err := Sleep(ctx, a.delay); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

type ExecuteScript struct {
	driver  output.DriverPort
	source  string
	element any
}

func NewExecuteScript(driver output.DriverPort, source string, element any) *ExecuteScript {
	return &ExecuteScript{driver: driver, source: source, element: element}
}

func (a *ExecuteScript) Execute(ctx context.Context) (any, error) {
	if a.element != nil {
		return a.driver.RunScript(ctx, a.source, a.element)
	}
	return a.driver.RunScript(ctx, a.source)
}

type Navigate struct {
	driver output.DriverPort
	url    string
}

func NewNavigate(driver output.DriverPort, url string) *Navigate {
	return &Navigate{driver: driver, url: url}
}

func (a *Navigate) Execute(ctx context.Context) (any, error) {
	return nil, a.driver.Navigate(ctx, a.url)
}

// Scroll moves the page by a fraction of its scrollable height. "down"
// measures the offset from the top of the document, "top" from the bottom.
type Scroll struct {
	driver  output.DriverPort
	to      string
	percent float64
}

func NewScroll(driver output.DriverPort, to string, percent float64) *Scroll {
	return &Scroll{driver: driver, to: to, percent: percent}
}

func (a *Scroll) Execute(ctx context.Context) (any, error) {
	to, err := scrollDirection(a.to)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(a.percent) {
		return nil, fmt.Errorf("%w: scroll percent is NaN", entity.ErrInvalidArgument)
	}

	script := scrollDownScript
	if to == ScrollTop {
		script = scrollTopScript
	}

	_, err = a.driver.RunScript(ctx, script, ClampPercent(a.percent))
	return nil, err
}

func ClampPercent(p float64) float64 {
	return max(0, min(p, 1))
}

// Sleep pauses for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
