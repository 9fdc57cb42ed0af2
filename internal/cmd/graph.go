package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lunarepo/lunar/internal/workspace"
)

var graphCmd = &cobra.Command{
	Use:   "graph <project:task> [project:task...]",
	Short: "Print the task graph for the given targets",
	Long: `Graph builds the task graph for the given targets and prints its
execution plan: one line per batch, where every task's dependencies live in
an earlier batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	ws, err := workspace.Load(viper.GetString("workspace"), nil)
	if err != nil {
		return err
	}

	g, err := ws.BuildGraph(args)
	if err != nil {
		return err
	}

	batches, err := g.TopoOrder()
	if err != nil {
		return err
	}

	for i, batch := range batches {
		targets := make([]string, 0, len(batch))
		for _, node := range batch {
			targets = append(targets, g.Target(node).String())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, strings.Join(targets, ", "))
	}
	return nil
}
