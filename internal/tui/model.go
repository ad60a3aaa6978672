// Package tui implements the interactive now-playing view. The view is a
// read-only projection of the registry: the dispatch goroutine pushes
// snapshots in via SnapshotMsg, and key presses go back out as control
// names on a channel the dispatch goroutine consumes. The model itself
// never touches the registry or the bus.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aldenhart/mprisctl/internal/player"
)

// PlayerView is the displayed state of one tracked player.
type PlayerView struct {
	Name    string // MPRIS name suffix, e.g. "vlc"
	State   player.PlaybackState
	Title   string
	Artist  string
	Album   string
	Primary bool
}

// SnapshotMsg replaces the displayed player list. Sent by the dispatch
// goroutine after every handled bus signal.
type SnapshotMsg struct {
	Players []PlayerView
}

// Model is the bubbletea model for the interactive view.
type Model struct {
	keys     KeyMap
	help     help.Model
	controls chan<- string

	players []PlayerView
	width   int
}

// New creates a Model that emits control names on controls.
func New(controls chan<- string) Model {
	return Model{
		keys:     DefaultKeyMap(),
		help:     help.New(),
		controls: controls,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case SnapshotMsg:
		m.players = msg.Players

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PlayPause):
			m.control("PlayPause")
		case key.Matches(msg, m.keys.Next):
			m.control("Next")
		case key.Matches(msg, m.keys.Previous):
			m.control("Previous")
		case key.Matches(msg, m.keys.Stop):
			m.control("Stop")
		}
	}

	return m, nil
}

// control hands a transport request to the dispatch goroutine.
// Requests are dropped rather than blocking the UI.
func (m Model) control(name string) {
	select {
	case m.controls <- name:
	default:
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mprisctl"))
	b.WriteString("\n")

	if len(m.players) == 0 {
		b.WriteString(mutedStyle.Render("No media players on the session bus."))
		b.WriteString("\n")
	}

	for _, p := range m.players {
		b.WriteString(renderPlayer(p))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderPlayer formats a single player line:
//
//	▶ vlc  playing  Band - Song (Album)
func renderPlayer(p PlayerView) string {
	mark := "  "
	if p.Primary {
		mark = primaryMarkStyle.Render("▶ ")
	}

	state := mutedStyle.Render(p.State.String())
	switch p.State {
	case player.StatePlaying:
		state = playingStyle.Render(p.State.String())
	case player.StatePaused:
		state = pausedStyle.Render(p.State.String())
	}

	track := mutedStyle.Render("nothing playing")
	if p.Title != "" || p.Artist != "" {
		track = trackStyle.Render(fmt.Sprintf("%s - %s", p.Artist, p.Title))
		if p.Album != "" {
			track += mutedStyle.Render(fmt.Sprintf(" (%s)", p.Album))
		}
	}

	return fmt.Sprintf("%s%s  %s  %s", mark, p.Name, state, track)
}

// Snapshot projects registry handles into display state. Call it on the
// dispatch goroutine, where reading the handles is safe.
func Snapshot(players []*player.Player, primary *player.Player, suffix func(string) string) []PlayerView {
	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		meta := p.Metadata()
		views = append(views, PlayerView{
			Name:    suffix(p.BusName()),
			State:   p.State(),
			Title:   meta.Title,
			Artist:  meta.DisplayArtist(),
			Album:   meta.Album,
			Primary: p == primary,
		})
	}
	return views
}
