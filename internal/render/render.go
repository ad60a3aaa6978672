// Package render turns cached player state into a one-line status string.
//
// Templates use two constructs:
//
//	{{title}} {{artist}} {{album}}   metadata tags, substituted verbatim
//	{{playing}}...{{/playing}}       block kept only while playing
//	{{paused}}...{{/paused}}         block kept while paused (or unknown)
//
// The renderer remembers the last emitted line and suppresses duplicates,
// since players routinely emit several change signals for one user-visible
// update.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/aldenhart/mprisctl/internal/player"
)

// Block names recognized in templates.
const (
	blockPlaying = "playing"
	blockPaused  = "paused"
)

// DefaultTemplate is the status template used when none is configured.
const DefaultTemplate = "{{playing}}Playing: {{/playing}}{{paused}}Paused: {{/paused}}{{artist}} - {{title}}"

// Renderer expands a template against player state, truncates to a display
// width, and suppresses consecutive duplicate output.
type Renderer struct {
	template string
	limit    int

	prev    string
	hasPrev bool
}

// New creates a Renderer for the given template. A positive limit truncates
// output to that display width in terminal cells; zero disables truncation.
func New(template string, limit int) *Renderer {
	return &Renderer{template: template, limit: limit}
}

// Render expands the template for the given state. The bool reports whether
// the line should be emitted; it is false when the result equals the
// previously emitted line.
func (r *Renderer) Render(meta player.Metadata, state player.PlaybackState) (string, bool) {
	out := Expand(r.template, meta, state)
	if r.limit > 0 {
		out = runewidth.Truncate(out, r.limit, "")
	}

	if r.hasPrev && out == r.prev {
		return "", false
	}
	r.prev = out
	r.hasPrev = true
	return out, true
}

// Expand substitutes metadata tags and resolves playback blocks.
// The paused block also covers the unknown state.
func Expand(template string, meta player.Metadata, state player.PlaybackState) string {
	out := replaceTags(template, meta)
	if state == player.StatePlaying {
		out = keepBlock(out, blockPlaying)
		out = dropBlock(out, blockPaused)
	} else {
		out = keepBlock(out, blockPaused)
		out = dropBlock(out, blockPlaying)
	}
	return out
}

// replaceTags substitutes every metadata tag with its field value.
func replaceTags(s string, meta player.Metadata) string {
	replacer := strings.NewReplacer(
		"{{title}}", meta.Title,
		"{{artist}}", meta.DisplayArtist(),
		"{{album}}", meta.Album,
	)
	return replacer.Replace(s)
}

// keepBlock deletes a block's markers while keeping its inner content.
func keepBlock(s, name string) string {
	s = strings.ReplaceAll(s, marker(name), "")
	return strings.ReplaceAll(s, endMarker(name), "")
}

// dropBlock deletes a block wholesale: markers and inner content. When the
// markers are unpaired only the markers are stripped, so no marker text ever
// leaks into output.
func dropBlock(s, name string) string {
	begin := marker(name)
	end := endMarker(name)

	start := strings.Index(s, begin)
	stop := strings.Index(s, end)
	if start < 0 || stop < start {
		return keepBlock(s, name)
	}
	return s[:start] + s[stop+len(end):]
}

func marker(name string) string    { return "{{" + name + "}}" }
func endMarker(name string) string { return "{{/" + name + "}}" }
