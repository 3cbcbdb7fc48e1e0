// Root command for the wayfarer CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/internal/paths"
	"github.com/wayfarer-app/wayfarer/pkg/wayfarer"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagBackend   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir string
	configBackend string
)

var rootCmd = &cobra.Command{
	Use:     "wayfarer",
	Short:   "Wayfarer is a local-first travel companion",
	Version: wayfarer.Version,
	Long: `Wayfarer manages trips, travel buddies, itineraries, expenses,
recommendations, journals, and chat over a local store. Writes made while
offline queue up and replay on the next sync.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configBackend = cfg.GetString(cfgKeyBackend)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.wayfarer)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.wayfarer-db)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite or docstore (default: from config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(tripCmd)
	rootCmd.AddCommand(buddyCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(itineraryCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(syncCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > WAYFARER_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > WAYFARER_DATA_DIR env >
// $(CWD)/.wayfarer-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveBackend returns the backend name from flag, config, or default.
func resolveBackend() string {
	if flagBackend != "" {
		return flagBackend
	}
	if configBackend != "" {
		return configBackend
	}
	return defaultBackend
}
