package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/internai/internal/resume"
	"github.com/spigell/internai/internal/workflow"
)

// profileFlags seed the session profile for commands that need one.
type profileFlags struct {
	resume string
	skills []string
	name   string
	email  string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.resume, "resume", "r", "", "resume file to analyze first (txt, html, pdf, docx or - for stdin)")
	cmd.Flags().StringSliceVarP(&f.skills, "skills", "s", nil, "comma separated skills used instead of a resume analysis")
	cmd.Flags().StringVar(&f.name, "name", "", "your name")
	cmd.Flags().StringVar(&f.email, "email", "", "your email")
}

// apply loads the profile into the session. A resume is analyzed; explicit
// skills are written as is. With neither the profile stays empty.
func (f *profileFlags) apply(ctx context.Context, e *env) {
	if f.name != "" {
		e.session.Store.SetName(strings.TrimSpace(f.name))
	}
	if f.email != "" {
		e.session.Store.SetEmail(strings.TrimSpace(f.email))
	}

	if f.resume != "" {
		analyzeResumeFile(ctx, e, f.resume)
		return
	}

	if len(f.skills) > 0 {
		e.session.Store.SetSkills(f.skills)
	}
}

func analyzeResumeFile(ctx context.Context, e *env, path string) *workflow.AnalysisResult {
	text, err := resume.Load(path, os.Stdin)
	if err != nil {
		e.logger.Fatal("loading a resume", zap.Error(err), zap.String("path", path))
	}

	e.logger.Info("analyzing resume", zap.String("path", path), zap.Int("length", len(text)))

	result, err := e.session.AnalyzeResume(ctx, text)
	if err != nil {
		exitWithStoreError(e)
	}
	return result
}

// exitWithStoreError prints the user facing error of the last action and exits.
func exitWithStoreError(e *env) {
	msg, ok := e.session.Store.Error()
	if !ok {
		msg = "Unexpected error"
	}
	exitWithMessage(msg)
}

func exitWithMessage(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
