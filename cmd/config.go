package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ewalden/drift/internal/config"
)

// configCmd manages drift settings.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("%s Configuration (%s)\n\n", appConfig.Theme.IconApp, path)
		fmt.Printf("  player.countdown_seconds    %d\n", appConfig.Player.CountdownSeconds)
		fmt.Printf("  player.idle_timeout         %s\n", appConfig.Player.IdleTimeout)
		fmt.Printf("  player.ambient_enabled      %t\n", appConfig.Player.AmbientEnabled)
		fmt.Printf("  player.keyboard_seek_step   %d\n", appConfig.Player.KeyboardSeekStep)
		fmt.Printf("  notifications.enabled       %t\n", appConfig.Notifications.Enabled)
		fmt.Printf("  mcp.enabled                 %t\n", appConfig.MCP.Enabled)
		fmt.Printf("  storage.data_dir            %s\n", appConfig.Storage.DataDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Changes one setting and writes the config file. Supported keys:

  player.countdown_seconds    seconds before a feedback entry commits
  player.idle_timeout         quiet window before ambient mode (e.g. 10s)
  player.ambient_enabled      true/false
  player.keyboard_seek_step   seconds per arrow-key seek
  notifications.enabled       true/false
  mcp.enabled                 true/false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		switch key {
		case "player.countdown_seconds":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return fmt.Errorf("%s must be a positive integer", key)
			}
			appConfig.Player.CountdownSeconds = n
		case "player.idle_timeout":
			d, err := time.ParseDuration(value)
			if err != nil || d <= 0 {
				return fmt.Errorf("%s must be a positive duration like 10s", key)
			}
			appConfig.Player.IdleTimeout = config.Duration(d)
		case "player.ambient_enabled":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s must be true or false", key)
			}
			appConfig.Player.AmbientEnabled = b
		case "player.keyboard_seek_step":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return fmt.Errorf("%s must be a positive integer", key)
			}
			appConfig.Player.KeyboardSeekStep = n
		case "notifications.enabled":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s must be true or false", key)
			}
			appConfig.Notifications.Enabled = b
		case "mcp.enabled":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s must be true or false", key)
			}
			appConfig.MCP.Enabled = b
		default:
			return fmt.Errorf("unknown setting %q", key)
		}

		if err := config.Save(appConfig); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("✅ %s = %s\n", key, value)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		def := config.DefaultConfig()
		// Keep identity and library state across a reset.
		def.FirstRun = false
		def.UserID = appConfig.UserID
		def.Storage = appConfig.Storage

		if err := config.Save(def); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		appConfig = def
		fmt.Println("✅ Settings restored to defaults")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
}
