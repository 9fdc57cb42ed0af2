package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lunarepo/lunar/internal/workspace"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync project manifests with the dependency graph",
	Long: `Sync propagates project dependency edges into generated manifests:
package.json gains workspace dependency entries and tsconfig.json gains
project references. Both mutations are additive and idempotent.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	if logger != nil {
		defer logger.Close()
	}

	ws, err := workspace.Load(viper.GetString("workspace"), logger)
	if err != nil {
		return err
	}

	synced, err := ws.SyncAll()
	if err != nil {
		return err
	}

	if synced == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "all manifests are up to date")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "synced %d projects\n", synced)
	}
	return nil
}
