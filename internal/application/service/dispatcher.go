package service

import (
	"context"
	"fmt"
	"time"

	"browser-actions/internal/application/action"
	"browser-actions/internal/application/port/input"
	"browser-actions/internal/application/port/output"
	"browser-actions/internal/domain/entity"
)

var _ input.CommandExecutor = (*Dispatcher)(nil)

const (
	defaultStrategy = entity.LocateByCSS
	defaultWait     = 10 * time.Second
)

const (
	KeyActionTab   = "tab"
	KeyActionClick = "click"
)

type DispatcherConfig struct {
	Strategy entity.LocatorStrategy
	Wait     time.Duration
}

func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Strategy: defaultStrategy,
		Wait:     defaultWait,
	}
}

// Dispatcher turns command descriptors into executed actions. It holds no
// element handles between commands.
type Dispatcher struct {
	driver   output.DriverPort
	keyboard output.KeyboardPort
	logger   output.LoggerPort
	strategy entity.LocatorStrategy
	wait     time.Duration
}

func NewDispatcher(
	driver output.DriverPort,
	keyboard output.KeyboardPort,
	logger output.LoggerPort,
	cfg DispatcherConfig,
) (*Dispatcher, error) {
	if cfg.Strategy == "" {
		cfg.Strategy = defaultStrategy
	}
	if !cfg.Strategy.Valid() {
		return nil, fmt.Errorf("%w: unknown locator strategy %q", entity.ErrInvalidArgument, cfg.Strategy)
	}
	if cfg.Wait <= 0 {
		cfg.Wait = defaultWait
	}

	return &Dispatcher{
		driver:   driver,
		keyboard: keyboard,
		logger:   logger.WithField("component", "dispatcher"),
		strategy: cfg.Strategy,
		wait:     cfg.Wait,
	}, nil
}

func (d *Dispatcher) Execute(ctx context.Context, cmd entity.CommandDescriptor) (any, error) {
	params, err := action.ParseParams(cmd)
	if err != nil {
		return nil, err
	}

	if w, ok := params.(action.WaitParams); ok {
		d.logger.Debug("Waiting", "duration", w.Duration)
		return nil, action.Sleep(ctx, w.Duration)
	}

	var el output.ElementPort
	if t, ok := params.(action.Targeted); ok {
		el, err = d.locate(ctx, t.Locator())
		if err != nil {
			return nil, err
		}
	}

	act, err := action.New(params, d.driver, el)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("Executing action", "action", cmd.Action)
	return act.Execute(ctx)
}

func (d *Dispatcher) locate(ctx context.Context, locator string) (output.ElementPort, error) {
	d.logger.Debug("Locating element", "strategy", d.strategy, "locator", locator, "wait", d.wait)

	el, err := d.driver.FindVisible(ctx, d.strategy, locator, d.wait)
	if err != nil {
		d.logger.Warn("Element not located", "locator", locator, "error", err)
		return nil, err
	}
	return el, nil
}

// SendKeys types text into the focused element as one key chain.
func (d *Dispatcher) SendKeys(ctx context.Context, text string) error {
	d.logger.Debug("Sending keys", "length", len(text))
	return d.keyboard.TypeKeys(ctx, text)
}

// SendAction performs a single named key-chain gesture on the focused
// element: "tab" or "click".
func (d *Dispatcher) SendAction(ctx context.Context, name string) error {
	switch name {
	case KeyActionTab:
		return d.keyboard.PressTab(ctx)
	case KeyActionClick:
		return d.keyboard.ClickAtCursor(ctx)
	}
	return fmt.Errorf("%w: key action %q (allowed: %s, %s)", entity.ErrInvalidAction, name, KeyActionTab, KeyActionClick)
}
