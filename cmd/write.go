package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spigell/internai/internal/types"
)

var writeProfile profileFlags

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a cover letter for a matched job or a job typed in by hand",
	Run: func(cmd *cobra.Command, _ []string) {
		write(cmd)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)

	writeProfile.register(writeCmd)
	writeCmd.Flags().String("job-id", "", "id of a matched job")
	writeCmd.Flags().StringP("jobs", "f", "", "JSON file with jobs to match when --job-id is set. Sample jobs are used when unset.")
	writeCmd.Flags().String("title", "", "job title")
	writeCmd.Flags().String("company", "", "company name")
	writeCmd.Flags().String("location", "", "job location")
	writeCmd.Flags().String("desc", "", "job description")
}

func write(cmd *cobra.Command) {
	ctx := context.Background()
	e := setup(ctx)

	writeProfile.apply(ctx, e)

	var err error
	if jobID, _ := cmd.Flags().GetString("job-id"); jobID != "" {
		jobsFile, _ := cmd.Flags().GetString("jobs")
		runMatch(ctx, e, jobsFile)

		m, ok := e.session.FindMatch(jobID)
		if !ok {
			exitWithMessage(fmt.Sprintf("there is no matched job with id %s", jobID))
		}
		_, err = e.session.WriteCoverLetter(ctx, m.Job)
	} else {
		_, err = e.session.WriteDraftCoverLetter(ctx, draftFromFlags(cmd))
	}

	view := e.session.CoverLetterView()
	if err != nil {
		exitWithMessage(view.Error)
	}
	renderCoverLetter(os.Stdout, view)
}

func draftFromFlags(cmd *cobra.Command) types.JobDraft {
	title, _ := cmd.Flags().GetString("title")
	company, _ := cmd.Flags().GetString("company")
	location, _ := cmd.Flags().GetString("location")
	desc, _ := cmd.Flags().GetString("desc")

	return types.JobDraft{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: desc,
	}
}
