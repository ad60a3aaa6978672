// Package cmd defines the mprisctl command tree.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aldenhart/mprisctl/internal/config"
	"github.com/aldenhart/mprisctl/internal/render"
)

var rootCmd = &cobra.Command{
	Use:   "mprisctl",
	Short: "Control and watch MPRIS media players from the command line",
	Long: `mprisctl discovers MPRIS-compatible media players on the D-Bus session
bus, picks the player that is currently playing or paused, and renders its
status through a small template language:

  {{title}} {{artist}} {{album}}   metadata tags
  {{playing}}...{{/playing}}       shown only while playing
  {{paused}}...{{/paused}}         shown while paused

Run without a subcommand to print the status once.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/mprisctl/config.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", render.DefaultTemplate, "status template")
	rootCmd.PersistentFlags().IntP("limit", "l", 30, "number of display cells to show, 0 for unlimited")
	rootCmd.PersistentFlags().StringArrayP("exclude", "e", nil, "players to exclude from appearing (repeatable)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("limit", rootCmd.PersistentFlags().Lookup("limit"))
	_ = viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/mprisctl")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MPRISCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
