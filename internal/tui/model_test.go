package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aldenhart/mprisctl/internal/player"
)

func TestModelUpdate(t *testing.T) {
	t.Run("snapshot replaces the player list", func(t *testing.T) {
		m := New(make(chan string, 1))

		updated, _ := m.Update(SnapshotMsg{Players: []PlayerView{
			{Name: "vlc", State: player.StatePlaying, Title: "Song", Artist: "Band", Primary: true},
		}})
		m = updated.(Model)

		if len(m.players) != 1 {
			t.Fatalf("players = %d, want 1", len(m.players))
		}
		if m.players[0].Name != "vlc" {
			t.Errorf("player name = %q, want %q", m.players[0].Name, "vlc")
		}
	})

	t.Run("quit key ends the program", func(t *testing.T) {
		m := New(make(chan string, 1))

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		if cmd == nil {
			t.Fatal("expected a quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("command = %T, want tea.QuitMsg", cmd())
		}
	})

	t.Run("transport keys emit control names", func(t *testing.T) {
		controls := make(chan string, 1)
		m := New(controls)

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

		select {
		case name := <-controls:
			if name != "Next" {
				t.Errorf("control = %q, want %q", name, "Next")
			}
		default:
			t.Fatal("no control emitted")
		}
	})

	t.Run("full control channel drops instead of blocking", func(t *testing.T) {
		controls := make(chan string, 1)
		controls <- "PlayPause"
		m := New(controls)

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

		if got := <-controls; got != "PlayPause" {
			t.Errorf("queued control = %q, want %q", got, "PlayPause")
		}
	})
}

func TestModelView(t *testing.T) {
	t.Run("empty list shows a placeholder", func(t *testing.T) {
		m := New(make(chan string, 1))

		if view := m.View(); !strings.Contains(view, "No media players") {
			t.Errorf("view missing placeholder:\n%s", view)
		}
	})

	t.Run("lists players with the primary marked", func(t *testing.T) {
		m := New(make(chan string, 1))
		updated, _ := m.Update(SnapshotMsg{Players: []PlayerView{
			{Name: "vlc", State: player.StatePlaying, Title: "Song", Artist: "Band", Album: "LP", Primary: true},
			{Name: "mpv", State: player.StatePaused},
		}})
		m = updated.(Model)

		view := m.View()
		for _, want := range []string{"vlc", "mpv", "Band - Song", "(LP)", "▶"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q:\n%s", want, view)
			}
		}
	})
}

func TestSnapshot(t *testing.T) {
	suffix := func(name string) string {
		return strings.TrimPrefix(name, "org.mpris.MediaPlayer2.")
	}

	a := player.New("org.mpris.MediaPlayer2.vlc", ":1.10", nil)
	b := player.New("org.mpris.MediaPlayer2.mpv", ":1.11", nil)

	views := Snapshot([]*player.Player{a, b}, b, suffix)

	if len(views) != 2 {
		t.Fatalf("views = %d, want 2", len(views))
	}
	if views[0].Name != "vlc" || views[1].Name != "mpv" {
		t.Errorf("names = %q, %q", views[0].Name, views[1].Name)
	}
	if views[0].Primary || !views[1].Primary {
		t.Errorf("primary flags = %v, %v; want false, true", views[0].Primary, views[1].Primary)
	}
}
