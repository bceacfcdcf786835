package output

import (
	"context"
	"time"

	"browser-actions/internal/domain/entity"
)

// DriverPort is a live browser session shared by every command.
type DriverPort interface {
	Navigate(ctx context.Context, url string) error
	// RunScript evaluates a WebDriver-style script body. ElementPort
	// arguments are handed to the page as DOM nodes.
	RunScript(ctx context.Context, script string, args ...any) (any, error)
	FindVisible(ctx context.Context, strategy entity.LocatorStrategy, locator string, timeout time.Duration) (ElementPort, error)
}

// ElementPort is a handle to a DOM node, valid for one command.
type ElementPort interface {
	Click(ctx context.Context) error
	Clear(ctx context.Context) error
	SendCharacter(ctx context.Context, c rune) error
}

// KeyboardPort drives whatever element currently holds input focus.
type KeyboardPort interface {
	TypeKeys(ctx context.Context, text string) error
	PressTab(ctx context.Context) error
	ClickAtCursor(ctx context.Context) error
}

type BrowserPort interface {
	DriverPort
	KeyboardPort

	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	CurrentURL() string
	Close()
}
