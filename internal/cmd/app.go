package cmd

import (
	"fmt"

	"github.com/aldenhart/mprisctl/internal/bus"
	"github.com/aldenhart/mprisctl/internal/config"
	"github.com/aldenhart/mprisctl/internal/event"
	"github.com/aldenhart/mprisctl/internal/logging"
	"github.com/aldenhart/mprisctl/internal/registry"
	"github.com/aldenhart/mprisctl/internal/render"
)

// app bundles the wired-up pieces every command needs: configuration, the
// bus connection, and a populated registry publishing onto events.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	session  *bus.Session
	events   *event.Bus
	registry *registry.Registry
}

// newApp loads the configuration, connects to the session bus, and
// populates the registry. Event subscribers must be registered on events
// before calling, so reports produced during population reach them.
func newApp(events *event.Bus) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logging.NewLogger(cfg.Logging.Level)

	session, err := bus.ConnectSession()
	if err != nil {
		return nil, err
	}

	reg := registry.New(session, render.New(cfg.Format, cfg.Limit), events, log, cfg.Exclude)
	if err := reg.Populate(); err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("enumerating players: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		session:  session,
		events:   events,
		registry: reg,
	}, nil
}

// Close releases the bus connection.
func (a *app) Close() {
	if err := a.session.Close(); err != nil {
		a.log.Debug("closing bus connection", "error", err)
	}
}
