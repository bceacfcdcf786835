package action

import (
	"fmt"
	"math"
	"strings"
	"time"

	"browser-actions/internal/domain/entity"
)

const DefaultDelay = 100 * time.Millisecond

const (
	ScrollTop  = "top"
	ScrollDown = "down"
)

// Params is the typed argument set of one command. The concrete types
// below are the only implementations.
type Params interface {
	Kind() entity.ActionKind
}

// Targeted is implemented by params whose action runs on a located element.
type Targeted interface {
	Params
	Locator() string
}

type ClickParams struct {
	Element string
	Delay   time.Duration
}

type WriteParams struct {
	Element string
	Text    string
	Delay   time.Duration
}

type ScriptParams struct {
	Source string
	// Element, when set, becomes the script's first argument as is.
	Element any
}

type NavigateParams struct {
	URL string
}

type ScrollParams struct {
	To      string
	Percent float64
}

type WaitParams struct {
	Duration time.Duration
}

func (ClickParams) Kind() entity.ActionKind    { return entity.ActionClick }
func (WriteParams) Kind() entity.ActionKind    { return entity.ActionWrite }
func (ScriptParams) Kind() entity.ActionKind   { return entity.ActionExecute }
func (NavigateParams) Kind() entity.ActionKind { return entity.ActionGet }
func (ScrollParams) Kind() entity.ActionKind   { return entity.ActionScroll }
func (WaitParams) Kind() entity.ActionKind     { return entity.ActionWait }

func (p ClickParams) Locator() string { return p.Element }
func (p WriteParams) Locator() string { return p.Element }

// ParseParams validates the descriptor and extracts the typed parameters of
// its action. It never touches the browser.
func ParseParams(cmd entity.CommandDescriptor) (Params, error) {
	args := arguments(cmd.Args)

	switch cmd.Action {
	case entity.ActionClick:
		locator, err := args.requiredStr("element")
		if err != nil {
			return nil, err
		}
		delay, err := args.optionalSeconds("delay", DefaultDelay)
		if err != nil {
			return nil, err
		}
		return ClickParams{Element: locator, Delay: delay}, nil

	case entity.ActionWrite:
		locator, err := args.requiredStr("element")
		if err != nil {
			return nil, err
		}
		text, err := args.str("text")
		if err != nil {
			return nil, err
		}
		delay, err := args.optionalSeconds("delay", DefaultDelay)
		if err != nil {
			return nil, err
		}
		return WriteParams{Element: locator, Text: text, Delay: delay}, nil

	case entity.ActionExecute:
		source, err := args.requiredStr("jsCode")
		if err != nil {
			return nil, err
		}
		return ScriptParams{Source: source, Element: args["element"]}, nil

	case entity.ActionGet:
		url, err := args.requiredStr("url")
		if err != nil {
			return nil, err
		}
		return NavigateParams{URL: url}, nil

	case entity.ActionScroll:
		to, err := args.str("to")
		if err != nil {
			return nil, err
		}
		to, err = scrollDirection(to)
		if err != nil {
			return nil, err
		}
		percent, err := args.number("percent")
		if err != nil {
			return nil, err
		}
		return ScrollParams{To: to, Percent: percent}, nil

	case entity.ActionWait:
		d, err := args.seconds("time")
		if err != nil {
			return nil, err
		}
		return WaitParams{Duration: d}, nil
	}

	return nil, fmt.Errorf("%w: %q (allowed: %v)", entity.ErrInvalidAction, cmd.Action, entity.ActionKinds)
}

func scrollDirection(to string) (string, error) {
	to = strings.ToLower(to)
	if to != ScrollTop && to != ScrollDown {
		return "", fmt.Errorf("%w: scroll direction must be %q or %q, got %q",
			entity.ErrInvalidArgument, ScrollTop, ScrollDown, to)
	}
	return to, nil
}

type arguments map[string]any

func (a arguments) str(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", entity.ErrInvalidArgument, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", entity.ErrInvalidArgument, key, v)
	}
	return s, nil
}

func (a arguments) requiredStr(key string) (string, error) {
	s, err := a.str(key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%w: %q is empty", entity.ErrInvalidArgument, key)
	}
	return s, nil
}

func (a arguments) number(key string) (float64, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", entity.ErrInvalidArgument, key)
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, fmt.Errorf("%w: %q must be a number, got %T", entity.ErrInvalidArgument, key, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q must be finite, got %v", entity.ErrInvalidArgument, key, f)
	}
	return f, nil
}

// maxSeconds is the longest delay a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

func (a arguments) seconds(key string) (time.Duration, error) {
	n, err := a.number(key)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q must not be negative, got %v", entity.ErrInvalidArgument, key, n)
	}
	if n >= maxSeconds {
		return 0, fmt.Errorf("%w: %q is too large, got %v", entity.ErrInvalidArgument, key, n)
	}
	return time.Duration(n * float64(time.Second)), nil
}

func (a arguments) optionalSeconds(key string, def time.Duration) (time.Duration, error) {
	if v, ok := a[key]; !ok || v == nil {
		return def, nil
	}
	return a.seconds(key)
}
