package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Show the agent registry status",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()
		e := setup(ctx)

		snapshot := e.session.RefreshAgents(ctx)
		e.logger.Debug("polled agent registry", zap.String("status", string(snapshot.Status)))

		renderAgents(os.Stdout, snapshot)
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}
