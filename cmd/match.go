package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/internai/internal/jobs"
	"github.com/spigell/internai/internal/types"
)

var matchProfile profileFlags

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score jobs against your profile",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchProfile.register(matchCmd)
	matchCmd.Flags().StringP("jobs", "f", "", "JSON file with jobs to match. Sample jobs are used when unset.")
	matchCmd.Flags().Bool("dump", false, "dump the matches to a temp file")
}

func match(cmd *cobra.Command) {
	ctx := context.Background()
	e := setup(ctx)

	matchProfile.apply(ctx, e)

	jobsFile, _ := cmd.Flags().GetString("jobs")
	matches := runMatch(ctx, e, jobsFile)

	renderMatches(os.Stdout, matches)

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		dumpMatches(e, matches)
	}
}

// runMatch matches the jobs of jobsFile, or the sample set when it is empty.
func runMatch(ctx context.Context, e *env, jobsFile string) []types.MatchResult {
	var (
		matches []types.MatchResult
		err     error
	)

	if jobsFile != "" {
		items, loadErr := jobs.LoadFile(jobsFile)
		if loadErr != nil {
			e.logger.Fatal("loading jobs", zap.Error(loadErr), zap.String("filename", jobsFile))
		}
		matches, err = e.session.MatchJobs(ctx, items)
	} else {
		matches, err = e.session.MatchSample(ctx)
	}
	if err != nil {
		exitWithStoreError(e)
	}

	e.logger.Info("matched jobs", zap.Int("count", len(matches)))
	return matches
}

func dumpMatches(e *env, matches []types.MatchResult) {
	filename, err := jobs.DumpMatchesToTmpFile(matches)
	if err != nil {
		e.logger.Error("dump matches to file", zap.Error(err))
		return
	}
	e.logger.Info("dumping matches to file", zap.String("filename", filename))
}
