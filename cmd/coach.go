package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var coachProfile profileFlags

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Prepare interview questions and tips for a role",
	Run: func(cmd *cobra.Command, _ []string) {
		coach(cmd)
	},
}

func init() {
	rootCmd.AddCommand(coachCmd)

	coachProfile.register(coachCmd)
	coachCmd.Flags().String("role", "", "role to prepare for")
	coachCmd.Flags().String("company", "", "company name (optional)")
}

func coach(cmd *cobra.Command) {
	ctx := context.Background()
	e := setup(ctx)

	coachProfile.apply(ctx, e)

	role, _ := cmd.Flags().GetString("role")
	company, _ := cmd.Flags().GetString("company")

	_, err := e.session.CoachPrep(ctx, role, company)
	view := e.session.CoachingView()
	if err != nil {
		exitWithMessage(view.Error)
	}
	renderCoaching(os.Stdout, view)
}
