package di

import (
	"context"
	"fmt"
	"time"

	"browser-actions/internal/application/port/input"
	"browser-actions/internal/application/port/output"
	"browser-actions/internal/application/service"
	"browser-actions/internal/domain/entity"
	"browser-actions/internal/infrastructure/browser/rod"
	"browser-actions/internal/infrastructure/logger"
	"browser-actions/internal/usecase/runner"
)

type Container struct {
	Browser    output.BrowserPort
	Logger     output.LoggerPort
	Dispatcher input.CommandExecutor
	Runner     input.ScriptRunner
}

type Config struct {
	BrowserHeadless   bool
	BrowserNoSandbox  bool
	BrowserControlURL string
	BrowserSlowMotion time.Duration
	LocatorStrategy   entity.LocatorStrategy
	WaitTimeout       time.Duration
	LogLevel          string
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	logCfg := logger.DefaultConfig()
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.BrowserHeadless
	browserCfg.NoSandbox = cfg.BrowserNoSandbox
	browserCfg.ControlURL = cfg.BrowserControlURL
	browserCfg.SlowMotion = cfg.BrowserSlowMotion
	browser, err := rod.NewBrowserAdapter(ctx, browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	dispatcherCfg := service.DefaultDispatcherConfig()
	if cfg.LocatorStrategy != "" {
		dispatcherCfg.Strategy = cfg.LocatorStrategy
	}
	if cfg.WaitTimeout > 0 {
		dispatcherCfg.Wait = cfg.WaitTimeout
	}
	dispatcher, err := service.NewDispatcher(browser, browser, log, dispatcherCfg)
	if err != nil {
		browser.Close()
		log.Close()
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	return &Container{
		Browser:    browser,
		Logger:     log,
		Dispatcher: dispatcher,
		Runner:     runner.New(dispatcher, log),
	}, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
