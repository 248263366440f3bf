package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/eduexcel/icfesgen/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPushAndPop(t *testing.T) {
	r := New(&stubScreen{title: "areas"})
	second := &stubScreen{title: "subtemas"}

	r.Update(PushScreenMsg{Screen: second})
	if r.Depth() != 2 || r.Active().Title() != "subtemas" {
		t.Fatalf("after push: depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if !second.initRan {
		t.Error("expected Init() to run on pushed screen")
	}

	r.Update(PopScreenMsg{})
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active().Title() != "areas" {
		t.Fatalf("pop must stop at the root: depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "areas"})
	r.Push(&stubScreen{title: "preview 1"})

	next := &stubScreen{title: "preview 2"}
	r.Update(ReplaceScreenMsg{Screen: next})

	if r.Depth() != 2 || r.Active().Title() != "preview 2" {
		t.Fatalf("after replace: depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if !next.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestPopToRoot(t *testing.T) {
	r := New(&stubScreen{title: "areas"})
	r.Push(&stubScreen{title: "subtemas"})
	r.Push(&stubScreen{title: "estilos"})
	r.Push(&stubScreen{title: "preview"})

	r.Update(PopToRootMsg{})
	if r.Depth() != 1 || r.View(0, 0) != "areas" {
		t.Fatalf("expected only the root screen, got depth %d", r.Depth())
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	root := &stubScreen{title: "areas"}
	top := &stubScreen{title: "preview"}
	r := New(root)
	r.Push(top)

	type ping struct{}
	r.Update(ping{})

	if len(top.got) != 1 || len(root.got) != 0 {
		t.Fatalf("expected only the active screen to get the message: top %d, root %d", len(top.got), len(root.got))
	}
}
