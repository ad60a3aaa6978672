package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/aldenhart/mprisctl/internal/event"
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print the player status continuously",
	Long: `Render the primary player's status, then keep following playback and
topology changes, printing a new line whenever the rendered status changes.
Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func init() {
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	events := event.NewBus()
	subscribePrinter(events, cmd.OutOrStdout())

	app, err := newApp(events)
	if err != nil {
		return err
	}
	defer app.Close()

	app.registry.RenderPrimary()

	signals := make(chan *dbus.Signal, 32)
	if err := app.session.Watch(signals); err != nil {
		return err
	}
	defer app.session.Unwatch(signals)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.registry.Run(ctx, signals)
	return nil
}
