package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldenhart/mprisctl/internal/errors"
	"github.com/aldenhart/mprisctl/internal/event"
	"github.com/aldenhart/mprisctl/internal/player"
)

// Transport verbs all dispatch to the primary player and degrade to a
// no-op when no player is playing or paused.
func init() {
	rootCmd.AddCommand(
		transportCmd("play", "Start playback on the primary player", (*player.Player).Play),
		transportCmd("pause", "Pause the primary player", (*player.Player).Pause),
		transportCmd("playpause", "Toggle playback on the primary player", (*player.Player).PlayPause),
		transportCmd("stop", "Stop the primary player", (*player.Player).Stop),
		transportCmd("previous", "Skip to the previous track", (*player.Player).Previous),
		transportCmd("next", "Skip to the next track", (*player.Player).Next),
	)
}

func transportCmd(use, short string, control func(*player.Player) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(event.NewBus())
			if err != nil {
				return err
			}
			defer app.Close()

			primary := app.registry.Primary()
			if primary == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "NO ACTIVE PLAYERS")
				return nil
			}

			if err := control(primary); err != nil {
				// An unreachable player is not fatal; the call is dropped.
				if errors.IsRemoteUnavailable(err) {
					app.log.Warn("control call dropped", "command", use, "error", err)
					return nil
				}
				return err
			}
			return nil
		},
	}
}
