package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lunarepo/lunar/internal/runner"
	"github.com/lunarepo/lunar/internal/workspace"
)

var runCmd = &cobra.Command{
	Use:   "run <project:task> [project:task...]",
	Short: "Run one or more tasks and their dependencies",
	Long: `Run executes the given targets along with everything they transitively
depend on. Independent tasks run concurrently; a failed task cancels its
dependents while unrelated tasks keep running.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	if logger != nil {
		defer logger.Close()
	}

	ws, err := workspace.Load(viper.GetString("workspace"), logger)
	if err != nil {
		return err
	}

	g, err := ws.BuildGraph(args)
	if err != nil {
		return err
	}

	report, err := runner.New(ws, logger).Run(cmd.Context(), g)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Render())

	if !report.Success() {
		return fmt.Errorf("%d of %d tasks did not pass", report.Failed+report.Invalid+report.Cancelled, g.Len())
	}
	return nil
}
