// Package registry tracks MPRIS players as they appear, disappear, and
// rename on the session bus, keeps their cached playback state current, and
// selects the single primary player whose changes drive status output.
//
// Selection policy: players are scanned in arrival order and the first one
// that is playing or paused becomes primary. Arrival order is deliberate
// policy, not an accident of map iteration - it gives a stable tie-break
// when several players are active at once.
package registry

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/aldenhart/mprisctl/internal/bus"
	"github.com/aldenhart/mprisctl/internal/event"
	"github.com/aldenhart/mprisctl/internal/logging"
	"github.com/aldenhart/mprisctl/internal/player"
	"github.com/aldenhart/mprisctl/internal/render"
)

// Registry owns the set of player handles and the primary selection.
//
// All mutation happens on the goroutine running Run (or, before Run starts,
// the goroutine calling Populate); the registry is deliberately
// unsynchronized. The bus client and event bus are injected at construction,
// never reached for globally.
type Registry struct {
	client   bus.Client
	renderer *render.Renderer
	events   *event.Bus
	log      *logging.Logger
	exclude  map[string]bool

	order   []*player.Player          // arrival order, the selection scan order
	byOwner map[string]*player.Player // owner id -> handle

	// primary is nil when no player is playing or paused. It always points
	// at a handle present in byOwner; removal of the primary's entry resets
	// it before any further event is processed.
	primary *player.Player
}

// New creates a Registry. Entries of exclude are matched against the MPRIS
// name suffix ("spotify") or the full bus name; matching players are
// invisible to the registry.
func New(client bus.Client, renderer *render.Renderer, events *event.Bus, log *logging.Logger, exclude []string) *Registry {
	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = true
	}
	return &Registry{
		client:   client,
		renderer: renderer,
		events:   events,
		log:      log,
		exclude:  excluded,
		byOwner:  make(map[string]*player.Player),
	}
}

// Populate enumerates the bus and inserts a handle for every MPRIS name,
// then runs selection once.
func (r *Registry) Populate() error {
	names, err := r.client.ListNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		if !r.tracks(name) {
			continue
		}
		owner, err := r.client.NameOwner(name)
		if err != nil {
			r.log.Debug("skipping player without owner", "name", name, "error", err)
			continue
		}
		r.insert(name, owner)
	}

	r.selectPrimary()
	return nil
}

// AddPeer inserts a handle for a newly arrived player and re-runs selection.
func (r *Registry) AddPeer(name, owner string) {
	r.insert(name, owner)
	r.selectPrimary()
}

// RemovePeer drops the handle for a departed owner and re-runs selection.
// If the departed player was primary it is unsubscribed and the primary
// reference cleared before anything else happens.
func (r *Registry) RemovePeer(owner string) {
	h, ok := r.byOwner[owner]
	if !ok {
		return
	}

	if h == r.primary {
		if err := h.Unsubscribe(); err != nil {
			r.log.Warn("unsubscribe on departure failed", "owner", owner, "error", err)
		}
		r.primary = nil
	}

	delete(r.byOwner, owner)
	for i, p := range r.order {
		if p == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.log.Info("player removed", "name", h.BusName(), "owner", owner)
	r.events.Publish(event.NewPlayerRemovedEvent(h.BusName(), owner))
	r.selectPrimary()
}

// RenameOwner re-keys a handle under its new owner id and re-runs selection.
// The handle itself - cached metadata, playback state, subscription marker,
// and its place in arrival order - is untouched, so a primary survives its
// rename as primary.
func (r *Registry) RenameOwner(oldOwner, newOwner string) {
	h, ok := r.byOwner[oldOwner]
	if !ok {
		return
	}

	delete(r.byOwner, oldOwner)
	h.SetOwner(newOwner)
	r.byOwner[newOwner] = h

	r.log.Info("player owner changed", "name", h.BusName(), "old", oldOwner, "new", newOwner)
	r.events.Publish(event.NewPlayerRenamedEvent(h.BusName(), oldOwner, newOwner))
	r.selectPrimary()
}

// Primary returns the current primary player, or nil when no player is
// playing or paused.
func (r *Registry) Primary() *player.Player {
	return r.primary
}

// Players returns the tracked handles in arrival order.
func (r *Registry) Players() []*player.Player {
	out := make([]*player.Player, len(r.order))
	copy(out, r.order)
	return out
}

// RenderPrimary renders the primary's current state through the renderer,
// publishing a status event unless the output is a duplicate. With no
// primary it does nothing; the selection pass already published the
// no-active-players report.
func (r *Registry) RenderPrimary() {
	if r.primary == nil {
		return
	}
	if line, ok := r.renderer.Render(r.primary.Metadata(), r.primary.State()); ok {
		r.events.Publish(event.NewStatusChangedEvent(line))
	}
}

// Run dispatches bus signals until ctx is canceled or the channel closes.
// Handlers run to completion before the next signal is taken; this loop is
// the only place registry state mutates once it starts.
func (r *Registry) Run(ctx context.Context, signals <-chan *dbus.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			r.HandleSignal(sig)
		}
	}
}

// HandleSignal routes one bus signal to topology or change handling.
// Unrecognized signals are ignored.
func (r *Registry) HandleSignal(sig *dbus.Signal) {
	if change, ok := bus.ParseNameOwnerChanged(sig); ok {
		r.handleTopology(change)
		return
	}
	if change, ok := bus.ParsePropertiesChanged(sig); ok {
		r.handleChange(change)
	}
}

// handleTopology applies a NameOwnerChanged signal for a tracked name.
func (r *Registry) handleTopology(c bus.NameOwnerChange) {
	if !r.tracks(c.Name) {
		return
	}

	switch {
	case c.OldOwner == "" && c.NewOwner != "":
		r.AddPeer(c.Name, c.NewOwner)
	case c.NewOwner == "" && c.OldOwner != "":
		r.RemovePeer(c.OldOwner)
	case c.OldOwner != "" && c.NewOwner != "":
		r.RenameOwner(c.OldOwner, c.NewOwner)
	}
}

// handleChange applies a PropertiesChanged signal from a tracked player.
// Render-worthy changes on the primary produce output; playback-state
// changes on any player re-run selection, so a backgrounded player starting
// playback can take over as primary.
func (r *Registry) handleChange(c bus.PropertyChange) {
	if c.Interface != bus.PlayerInterface {
		return
	}
	h, ok := r.byOwner[c.Sender]
	if !ok {
		return
	}

	worthy := h.ApplyChange(c.Changed)
	if worthy && h == r.primary {
		r.RenderPrimary()
	}

	if _, ok := c.Changed[bus.PropPlaybackStatus]; ok {
		r.selectPrimary()
	}
}

// insert creates, refreshes, and registers a handle for name.
func (r *Registry) insert(name, owner string) {
	h := player.New(name, owner, r.client)
	if _, err := h.Refresh(); err != nil {
		r.log.Warn("metadata unavailable", "name", name, "owner", owner, "error", err)
	}

	r.order = append(r.order, h)
	r.byOwner[owner] = h

	r.log.Info("player added", "name", name, "owner", owner, "state", h.State().String())
	r.events.Publish(event.NewPlayerAddedEvent(name, owner))
}

// selectPrimary runs the selection policy: the first handle in arrival
// order that is playing or paused becomes primary, swapping the active
// subscription over if the choice changed. With no eligible handle the
// primary is cleared and the no-active-players report published.
func (r *Registry) selectPrimary() {
	var candidate *player.Player
	for _, h := range r.order {
		if h.State().Active() {
			candidate = h
			break
		}
	}

	if candidate == nil {
		if r.primary != nil {
			if err := r.primary.Unsubscribe(); err != nil {
				r.log.Warn("unsubscribe failed", "owner", r.primary.Owner(), "error", err)
			}
			r.primary = nil
		}
		r.log.Info("no active players")
		r.events.Publish(event.NewNoActivePlayersEvent())
		return
	}

	if candidate == r.primary {
		return
	}

	if r.primary != nil {
		if err := r.primary.Unsubscribe(); err != nil {
			r.log.Warn("unsubscribe failed", "owner", r.primary.Owner(), "error", err)
		}
	}
	r.primary = candidate
	if err := candidate.Subscribe(); err != nil {
		r.log.Warn("subscribe failed", "owner", candidate.Owner(), "error", err)
	}

	r.log.Info("primary changed", "name", candidate.BusName(), "owner", candidate.Owner())
	r.events.Publish(event.NewPrimaryChangedEvent(candidate.BusName(), candidate.Owner()))
}

// tracks reports whether a bus name is an MPRIS player this registry cares
// about: inside the namespace and not excluded by configuration.
func (r *Registry) tracks(name string) bool {
	if !bus.IsPlayerName(name) {
		return false
	}
	if r.exclude[name] || r.exclude[bus.PlayerSuffix(name)] {
		return false
	}
	return true
}
