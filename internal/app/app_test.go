package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tacit/internal/screens/annotate"
	"github.com/abhisek/tacit/internal/screens/home"
	"github.com/abhisek/tacit/internal/sentence"
	"github.com/abhisek/tacit/internal/session"
)

func testModel() AppModel {
	return newAppModel(Options{
		Session:    annotate.Options{Client: sentence.NewMockClient()},
		ServiceURL: "http://example.test",
	})
}

func TestStartsAtWelcome(t *testing.T) {
	m := testModel()
	if m.router.Active().Title() != "" {
		t.Errorf("expected splash screen, got %q", m.router.Active().Title())
	}
}

func TestWelcomeHandsOverToHome(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	m.Update(cmd())

	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("expected home screen, got %T", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestEscPopsAndDisposesSession(t *testing.T) {
	m := testModel()
	s := annotate.New(annotate.Options{Client: sentence.NewMockClient()})
	m.router.Push(s)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	m.Update(cmd())

	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
	if s.Controller().Phase() != session.PhaseDisposed {
		t.Errorf("session phase = %v, want disposed", s.Controller().Phase())
	}
}

func TestQuitDisposesEverything(t *testing.T) {
	m := testModel()
	s := annotate.New(annotate.Options{Client: sentence.NewMockClient()})
	m.router.Push(s)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
	if s.Controller().Phase() != session.PhaseDisposed {
		t.Error("session should be disposed on quit")
	}
}

func TestFooterHintsFromScreen(t *testing.T) {
	m := testModel()
	s := annotate.New(annotate.Options{Client: sentence.NewMockClient()})
	m.router.Push(s)

	hints := m.footerHints(m.router.Active())
	if len(hints) == 0 || hints[len(hints)-1].Key != "Q" {
		t.Errorf("expected screen hints plus quit, got %+v", hints)
	}
}
