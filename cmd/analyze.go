package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/internai/internal/workflow"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume text]",
	Short: "Extract skills and highlights from a resume",
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("file", "f", "", "resume file (txt, html, pdf, docx or - for stdin)")
}

func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	e := setup(ctx)

	var result *workflow.AnalysisResult
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		result = analyzeResumeFile(ctx, e, file)
	} else {
		var err error
		result, err = e.session.AnalyzeResume(ctx, strings.Join(args, " "))
		if err != nil {
			exitWithStoreError(e)
		}
	}

	renderAnalysis(os.Stdout, result, e.session.Store.Profile())
}
