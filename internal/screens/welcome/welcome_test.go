package welcome

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tacit/internal/router"
	"github.com/abhisek/tacit/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome(wake WakeFunc) (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory, wake), &callCount
}

func TestNoWakeWithoutFunc(t *testing.T) {
	w, _ := newTestWelcome(nil)
	if cmd := w.Init(); cmd != nil {
		t.Error("expected no command without a wake func")
	}
	if w.waking {
		t.Error("should not be waking")
	}
	if !strings.Contains(w.View(80, 24), "press any key") {
		t.Error("expected key hint")
	}
}

func TestWakeLifecycle(t *testing.T) {
	calls := 0
	w, _ := newTestWelcome(func(context.Context) error {
		calls++
		return nil
	})

	if cmd := w.Init(); cmd == nil {
		t.Fatal("expected wake command")
	}
	if !w.waking {
		t.Fatal("should be waking after Init")
	}
	if !strings.Contains(w.View(80, 24), "Waking the sentence service") {
		t.Error("expected waking caption")
	}

	w.Update(wakeDoneMsg{})
	if w.waking {
		t.Error("should stop waking after wakeDoneMsg")
	}
	if strings.Contains(w.View(80, 24), "Waking") {
		t.Error("waking caption should be gone")
	}
}

func TestWakeFailureShown(t *testing.T) {
	w, _ := newTestWelcome(func(context.Context) error { return errors.New("down") })
	w.Init()
	w.Update(wakeDoneMsg{err: errors.New("down")})

	if !strings.Contains(w.View(100, 24), "did not answer") {
		t.Error("expected wake failure note")
	}
}

func TestKeypressEmitsReplace(t *testing.T) {
	w, callCount := newTestWelcome(nil)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a command from keypress")
	}

	msg := cmd()
	replaceMsg, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replaceMsg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestKeypressWhileWakingSkips(t *testing.T) {
	w, callCount := newTestWelcome(func(context.Context) error { return nil })
	w.Init()

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'a'})
	if cmd == nil {
		t.Fatal("keypress during wake should still transition")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome(nil)

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestDisposeCancelsWake(t *testing.T) {
	w, _ := newTestWelcome(nil)
	w.Dispose()
	if w.ctx.Err() == nil {
		t.Error("context should be cancelled after Dispose")
	}
}

func TestBannerCompact(t *testing.T) {
	if got := RenderBanner(30); !strings.Contains(got, "T A C I T") {
		t.Errorf("expected compact banner, got %q", got)
	}
}
