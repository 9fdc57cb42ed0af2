// Package cmd wires the lunar CLI.
package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lunarepo/lunar/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "lunar",
	Short: "A task runner for JavaScript monorepos",
	Long: `Lunar orchestrates tasks across the projects of a monorepo: it builds a
dependency-aware task graph from workspace configuration, runs independent
tasks concurrently, and keeps generated manifests in sync with the graph.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("workspace", ".", "workspace root directory")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("LUNAR")
	// Replace dots with underscores for nested keys in env vars
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// newLogger builds the process logger from the global flags. Logs land in
// .lunar/ under the workspace root.
func newLogger() *logging.Logger {
	logger, err := logging.NewLogger(filepath.Join(viper.GetString("workspace"), ".lunar"), viper.GetString("log_level"))
	if err != nil {
		return nil
	}
	return logger
}
