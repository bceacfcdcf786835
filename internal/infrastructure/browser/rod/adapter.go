package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"regexp"
	"time"
	"unicode"

	"browser-actions/internal/application/port/output"
	"browser-actions/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const (
	defaultTimeout    = 10 * time.Second
	defaultSlowMotion = 0
	maxScreenshotWide = 1024
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	// Timeout bounds navigation and script evaluation.
	Timeout   time.Duration
	NoSandbox bool
	DevTools  bool
	// ControlURL connects to an already running browser instead of
	// launching one. The browser is left running on Close.
	ControlURL string
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   true,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
		NoSandbox:  false,
		DevTools:   false,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	var l *launcher.Launcher
	controlURL := cfg.ControlURL
	if controlURL == "" {
		l = launcher.New().
			Context(ctx).
			Headless(cfg.Headless).
			Devtools(cfg.DevTools).
			NoSandbox(cfg.NoSandbox).
			Delete("use-mock-keychain")

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().
		ControlURL(controlURL).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	p := b.page.Context(ctx).Timeout(b.timeout)
	defer p.CancelTimeout()

	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

// RunScript evaluates a WebDriver-style script body: it reads its inputs
// from arguments[] and yields its result with return.
func (b *BrowserAdapter) RunScript(ctx context.Context, script string, args ...any) (any, error) {
	jsArgs := make([]any, len(args))
	for i, arg := range args {
		if el, ok := arg.(*element); ok {
			jsArgs[i] = el.el.Object
			continue
		}
		jsArgs[i] = arg
	}

	p := b.page.Context(ctx).Timeout(b.timeout)
	defer p.CancelTimeout()

	res, err := p.Evaluate(rod.Eval("function() {\n"+script+"\n}", jsArgs...))
	if err != nil {
		return nil, err
	}
	return decodeRemote(res), nil
}

func decodeRemote(obj *proto.RuntimeRemoteObject) any {
	if obj == nil || obj.Type == proto.RuntimeRemoteObjectTypeUndefined {
		return nil
	}
	if obj.Value.Nil() {
		return nil
	}
	return obj.Value.Val()
}

// FindVisible polls until an element matching locator is visible or timeout
// elapses. The returned element is bound to ctx, not to the polling window.
func (b *BrowserAdapter) FindVisible(ctx context.Context, strategy entity.LocatorStrategy, locator string, timeout time.Duration) (output.ElementPort, error) {
	p := b.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	el, err := query(p, strategy, locator)
	if err == nil {
		err = el.WaitVisible()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s %q after %s", entity.ErrElementNotFound, strategy, locator, timeout)
		}
		return nil, err
	}

	return &element{el: el.Context(ctx)}, nil
}

func query(p *rod.Page, strategy entity.LocatorStrategy, locator string) (*rod.Element, error) {
	switch strategy {
	case entity.LocateByXPath:
		return p.ElementX(locator)
	case entity.LocateByLinkText:
		return p.ElementR("a", "^"+regexp.QuoteMeta(locator)+"$")
	}

	css, err := cssSelector(strategy, locator)
	if err != nil {
		return nil, err
	}
	return p.Element(css)
}

// cssSelector translates the CSS-expressible strategies into a selector.
func cssSelector(strategy entity.LocatorStrategy, locator string) (string, error) {
	switch strategy {
	case entity.LocateByCSS, entity.LocateByTagName:
		return locator, nil
	case entity.LocateByID:
		return fmt.Sprintf("[id=%q]", locator), nil
	case entity.LocateByName:
		return fmt.Sprintf("[name=%q]", locator), nil
	case entity.LocateByClassName:
		return fmt.Sprintf("[class~=%q]", locator), nil
	}
	return "", fmt.Errorf("%w: locator strategy %q has no CSS form", entity.ErrInvalidArgument, strategy)
}

// TypeKeys sends the whole text as a single key chain. Text outside the
// keyboard layout is inserted as one composition instead.
func (b *BrowserAdapter) TypeKeys(ctx context.Context, text string) error {
	p := b.page.Context(ctx)

	keys := make([]input.Key, 0, len(text))
	for _, r := range text {
		if r > unicode.MaxASCII || !(unicode.IsPrint(r) || r == '\t' || r == '\r') {
			return p.InsertText(text)
		}
		keys = append(keys, input.Key(r))
	}
	return p.KeyActions().Type(keys...).Do()
}

func (b *BrowserAdapter) PressTab(ctx context.Context) error {
	return b.page.Context(ctx).KeyActions().Type(input.Tab).Do()
}

func (b *BrowserAdapter) ClickAtCursor(ctx context.Context) error {
	return b.page.Context(ctx).Mouse.Click(proto.InputMouseButtonLeft, 1)
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	imgBytes, err := b.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxScreenshotWide {
		img = imaging.Resize(img, maxScreenshotWide, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Close closes the page. A browser launched by the adapter is shut down
// too; a browser reached through ControlURL keeps running.
func (b *BrowserAdapter) Close() {
	if b.launcher == nil {
		if b.page != nil {
			_ = b.page.Close()
		}
		return
	}
	if b.browser != nil {
		_ = b.browser.Close()
	}
	b.launcher.Kill()
	b.launcher.Cleanup()
}
