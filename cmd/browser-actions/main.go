package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"browser-actions/internal/application/port/output"
	"browser-actions/internal/di"
	"browser-actions/internal/domain/entity"
	"browser-actions/internal/infrastructure/env"
	"browser-actions/internal/infrastructure/script"
)

var (
	headless   bool
	noSandbox  bool
	controlURL string
	slowMotion int
	locator    string
	waitSecs   float64
	logLevel   string
	startURL   string
	screenshot string
)

func main() {
	rootCmd := newRootCmd(env.NewEnvService())
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flag defaults come from cfg.
func newRootCmd(cfg output.ConfigPort) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "browser-actions",
		Short: "Run declarative browser commands",
		Long: `browser-actions drives a Chromium session from command descriptors
({action, args}) such as click, write, execute, get, scroll and wait.

Example:
  browser-actions run login.yaml --locator id --wait 5`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&headless, "headless", cfg.GetBool(env.KeyBrowserHeadless, true), "Run the browser without a window")
	pf.BoolVar(&noSandbox, "no-sandbox", cfg.GetBool(env.KeyBrowserNoSandbox, false), "Disable the Chromium sandbox")
	pf.StringVar(&controlURL, "control-url", cfg.Get(env.KeyBrowserControlURL), "DevTools URL of a running browser to attach to")
	pf.IntVar(&slowMotion, "slow-motion", cfg.GetInt(env.KeyBrowserSlowMotion, 0), "Delay between driver operations (ms)")
	pf.StringVar(&locator, "locator", cfg.GetWithDefault(env.KeyLocatorStrategy, string(entity.LocateByCSS)), "Locator strategy: css selector, id, xpath, name, class name, tag name, link text")
	pf.Float64Var(&waitSecs, "wait", cfg.GetFloat(env.KeyWaitSeconds, 10), "Seconds to wait for an element to become visible")
	pf.StringVar(&logLevel, "log-level", cfg.GetWithDefault(env.KeyLogLevel, "info"), "Log level: debug, info, warn, error")
	pf.StringVar(&startURL, "url", "", "Navigate here before running")

	runCmd := &cobra.Command{
		Use:   "run <script|->",
		Short: "Execute a YAML or JSON command script (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().StringVarP(&screenshot, "screenshot", "s", "", "Save a JPEG screenshot here after the script")

	keysCmd := &cobra.Command{
		Use:   "keys <text>",
		Short: "Type text into the focused element",
		Args:  cobra.ExactArgs(1),
		RunE:  sendKeys,
	}

	keyActionCmd := &cobra.Command{
		Use:   "key-action <tab|click>",
		Short: "Press Tab or click at the cursor",
		Args:  cobra.ExactArgs(1),
		RunE:  sendKeyAction,
	}

	rootCmd.AddCommand(runCmd, keysCmd, keyActionCmd)
	return rootCmd
}

func newContainer(ctx context.Context) (*di.Container, error) {
	c, err := di.NewContainer(ctx, di.Config{
		BrowserHeadless:   headless,
		BrowserNoSandbox:  noSandbox,
		BrowserControlURL: controlURL,
		BrowserSlowMotion: time.Duration(slowMotion) * time.Millisecond,
		LocatorStrategy:   entity.LocatorStrategy(locator),
		WaitTimeout:       time.Duration(waitSecs * float64(time.Second)),
		LogLevel:          logLevel,
	})
	if err != nil {
		return nil, err
	}

	if startURL != "" {
		_, err := c.Dispatcher.Execute(ctx, entity.CommandDescriptor{
			Action: entity.ActionGet,
			Args:   map[string]any{"url": startURL},
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("open %s: %w", startURL, err)
		}
	}
	return c, nil
}

func runScript(cmd *cobra.Command, args []string) error {
	commands, err := loadCommands(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	c, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	c.Logger.Info("Script started", "file", args[0], "commands", len(commands))
	result, err := c.Runner.Run(ctx, commands)
	if err != nil {
		c.Logger.Error("Script failed", "error", err)
		return err
	}
	c.Logger.Info("Script completed", "steps", len(result.Steps), "url", c.Browser.CurrentURL())

	if screenshot != "" {
		shot, err := c.Browser.Screenshot(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(screenshot, shot.Data, 0o644); err != nil {
			return fmt.Errorf("write screenshot: %w", err)
		}
		c.Logger.Info("Screenshot saved", "file", screenshot, "width", shot.Width, "height", shot.Height)
	}

	return printResults(result.Steps)
}

// loadCommands reads the script from path, or from stdin when path is "-".
func loadCommands(cmd *cobra.Command, path string) ([]entity.CommandDescriptor, error) {
	if path == "-" {
		return script.Load(cmd.InOrStdin())
	}
	return script.LoadFile(path)
}

// printResults writes the values returned by execute commands as JSON.
func printResults(steps []entity.StepResult) error {
	var withValues []entity.StepResult
	for _, s := range steps {
		if s.Result != nil {
			withValues = append(withValues, s)
		}
	}
	if len(withValues) == 0 {
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(withValues)
}

func sendKeys(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	return c.Dispatcher.SendKeys(ctx, args[0])
}

func sendKeyAction(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	return c.Dispatcher.SendAction(ctx, args[0])
}
