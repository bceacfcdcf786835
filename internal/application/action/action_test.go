package action

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"browser-actions/internal/application/port/output"
	"browser-actions/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptCall struct {
	script string
	args   []any
}

type fakeDriver struct {
	navigated []string
	scripts   []scriptCall
	result    any
	err       error
}

func (d *fakeDriver) Navigate(ctx context.Context, url string) error {
	d.navigated = append(d.navigated, url)
	return d.err
}

func (d *fakeDriver) RunScript(ctx context.Context, script string, args ...any) (any, error) {
	d.scripts = append(d.scripts, scriptCall{script: script, args: args})
	return d.result, d.err
}

func (d *fakeDriver) FindVisible(ctx context.Context, strategy entity.LocatorStrategy, locator string, timeout time.Duration) (output.ElementPort, error) {
	return nil, errors.New("not used")
}

type fakeElement struct {
	calls     []string
	sent      []rune
	failAfter int
	err       error
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.calls = append(e.calls, "click")
	return e.err
}

func (e *fakeElement) Clear(ctx context.Context) error {
	e.calls = append(e.calls, "clear")
	return nil
}

func (e *fakeElement) SendCharacter(ctx context.Context, c rune) error {
	if e.err != nil && len(e.sent) >= e.failAfter {
		return e.err
	}
	e.calls = append(e.calls, "send")
	e.sent = append(e.sent, c)
	return nil
}

func TestClick_WaitsThenClicks(t *testing.T) {
	el := &fakeElement{}
	delay := 30 * time.Millisecond

	start := time.Now()
	res, err := NewClick(el, delay).Execute(context.Background())

	require.NoError(t, err)
	assert.Nil(t, res)
	assert.GreaterOrEqual(t, time.Since(start), delay)
	assert.Equal(t, []string{"click"}, el.calls)
}

func TestClick_PropagatesDriverError(t *testing.T) {
	clickErr := errors.New("element not interactable")
	el := &fakeElement{err: clickErr}

	_, err := NewClick(el, 0).Execute(context.Background())
	assert.Same(t, clickErr, err)
}

func TestClick_CancelledDuringDelay(t *testing.T) {
	el := &fakeElement{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClick(el, time.Second).Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, el.calls)
}

func TestWrite_ClearsOnceThenSendsEachCharacter(t *testing.T) {
	el := &fakeElement{}

	_, err := NewWrite(el, "ab", time.Millisecond).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"clear", "send", "send"}, el.calls)
	assert.Equal(t, []rune{'a', 'b'}, el.sent)
}

func TestWrite_EmptyTextOnlyClears(t *testing.T) {
	el := &fakeElement{}

	_, err := NewWrite(el, "", time.Millisecond).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"clear"}, el.calls)
}

func TestWrite_MultibyteText(t *testing.T) {
	el := &fakeElement{}

	_, err := NewWrite(el, "héé", 0).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []rune{'h', 'é', 'é'}, el.sent)
}

func TestWrite_FailureLeavesPartialText(t *testing.T) {
	inputErr := errors.New("detached")
	el := &fakeElement{err: inputErr, failAfter: 2}

	_, err := NewWrite(el, "abcd", 0).Execute(context.Background())

	assert.Same(t, inputErr, err)
	assert.Equal(t, []rune{'a', 'b'}, el.sent)
}

func TestExecuteScript_ReturnsValueUnchanged(t *testing.T) {
	want := map[string]any{"title": "Test", "n": float64(3)}
	d := &fakeDriver{result: want}

	got, err := NewExecuteScript(d, "return 1;", nil).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.Len(t, d.scripts, 1)
	assert.Empty(t, d.scripts[0].args)
}

func TestExecuteScript_ElementIsFirstArgument(t *testing.T) {
	d := &fakeDriver{result: "BUTTON"}
	el := &fakeElement{}

	got, err := NewExecuteScript(d, "return arguments[0].tagName;", el).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "BUTTON", got)
	require.Len(t, d.scripts, 1)
	require.Len(t, d.scripts[0].args, 1)
	assert.Same(t, el, d.scripts[0].args[0])
}

func TestExecuteScript_PropagatesError(t *testing.T) {
	scriptErr := errors.New("ReferenceError: foo is not defined")
	d := &fakeDriver{err: scriptErr}

	_, err := NewExecuteScript(d, "return foo;", nil).Execute(context.Background())
	assert.Same(t, scriptErr, err)
}

func TestNavigate(t *testing.T) {
	d := &fakeDriver{}

	res, err := NewNavigate(d, "https://example.com").Execute(context.Background())

	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, []string{"https://example.com"}, d.navigated)
}

func TestScroll_ClampsPercent(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    float64
	}{
		{"Above one", 1.5, 1},
		{"Below zero", -0.2, 0},
		{"Inside range", 0.25, 0.25},
		{"Upper bound", 1, 1},
		{"Lower bound", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDriver{}

			_, err := NewScroll(d, ScrollDown, tt.percent).Execute(context.Background())

			require.NoError(t, err)
			require.Len(t, d.scripts, 1)
			assert.Equal(t, []any{tt.want}, d.scripts[0].args)
		})
	}
}

func TestScroll_DirectionSelectsScript(t *testing.T) {
	down := &fakeDriver{}
	_, err := NewScroll(down, "DOWN", 0.5).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, down.scripts, 1)
	assert.Equal(t, scrollDownScript, down.scripts[0].script)

	top := &fakeDriver{}
	_, err = NewScroll(top, "Top", 0.5).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, top.scripts, 1)
	assert.Equal(t, scrollTopScript, top.scripts[0].script)
	assert.Contains(t, top.scripts[0].script, "document.body.scrollHeight - scrollAmount")
}

func TestScroll_InvalidDirection(t *testing.T) {
	for _, to := range []string{"up", "bottom", "", "UP"} {
		t.Run(to, func(t *testing.T) {
			d := &fakeDriver{}

			_, err := NewScroll(d, to, 2).Execute(context.Background())

			assert.ErrorIs(t, err, entity.ErrInvalidArgument)
			assert.Empty(t, d.scripts)
		})
	}
}

func TestScroll_NaNPercent(t *testing.T) {
	d := &fakeDriver{}

	_, err := NewScroll(d, ScrollDown, math.NaN()).Execute(context.Background())

	assert.ErrorIs(t, err, entity.ErrInvalidArgument)
	assert.Empty(t, d.scripts)
}

func TestNew_BuildsVariant(t *testing.T) {
	d := &fakeDriver{}
	el := &fakeElement{}

	tests := []struct {
		params Params
		want   Action
	}{
		{ClickParams{Element: "#a", Delay: time.Second}, &Click{element: el, delay: time.Second}},
		{WriteParams{Element: "#a", Text: "x", Delay: time.Millisecond}, &Write{element: el, text: "x", delay: time.Millisecond}},
		{ScriptParams{Source: "return 1;"}, &ExecuteScript{driver: d, source: "return 1;"}},
		{NavigateParams{URL: "about:blank"}, &Navigate{driver: d, url: "about:blank"}},
		{ScrollParams{To: ScrollTop, Percent: 0.3}, &Scroll{driver: d, to: ScrollTop, percent: 0.3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.params.Kind()), func(t *testing.T) {
			got, err := New(tt.params, d, el)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_TargetedWithoutElement(t *testing.T) {
	_, err := New(ClickParams{Element: "#a"}, &fakeDriver{}, nil)
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = New(WriteParams{Element: "#a"}, &fakeDriver{}, nil)
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestNew_WaitHasNoAction(t *testing.T) {
	_, err := New(WaitParams{Duration: time.Second}, &fakeDriver{}, nil)
	assert.ErrorIs(t, err, entity.ErrInvalidAction)
}

func TestSleep(t *testing.T) {
	start := time.Now()
	require.NoError(t, Sleep(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	require.NoError(t, Sleep(context.Background(), 0))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Minute), context.DeadlineExceeded)
}
