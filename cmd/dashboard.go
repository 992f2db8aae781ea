package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/internai/internal/filtering"
	"github.com/spigell/internai/internal/jobs"
	"github.com/spigell/internai/internal/resume"
	"github.com/spigell/internai/internal/store"
	"github.com/spigell/internai/internal/types"
)

const (
	PromptAnalyze       = "Analyze a resume"
	PromptProfile       = "Show profile"
	PromptMatchSample   = "Match sample jobs"
	PromptMatchFile     = "Match jobs from file"
	PromptShowMatches   = "Show matches"
	PromptCoverLetter   = "Write a cover letter for a match"
	PromptDraftLetter   = "Write a cover letter for another job"
	PromptCoach         = "Prepare for an interview"
	PromptDismiss       = "Dismiss matches to exclude file"
	PromptDismissAll    = "Dismiss all matches"
	PromptMatchesToFile = "Dump matches to file"
	PromptFilters       = "Show filters"
	PromptAgents        = "Refresh agents"
	PromptExit          = "Exit"
	PromptBack          = "back"
)

var errExit = errors.New("exit requested")

var dashboardPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{
		PromptAnalyze, PromptProfile, PromptMatchSample, PromptMatchFile, PromptShowMatches,
		PromptCoverLetter, PromptDraftLetter, PromptCoach, PromptDismiss, PromptMatchesToFile,
		PromptFilters, PromptAgents, PromptExit,
	},
	Size: 13,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the interactive dashboard",
	Run: func(cmd *cobra.Command, _ []string) {
		dashboard(cmd)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().StringP("resume", "r", "", "resume file analyzed on start")
}

func dashboard(cmd *cobra.Command) {
	ctx := context.Background()
	e := setup(ctx)

	e.logger.Info("starting the internai dashboard", zap.String("version", version))

	e.session.Store.Subscribe(func(s store.Snapshot) {
		e.logger.Debug("profile updated",
			zap.Bool("loading", s.Loading),
			zap.Int("skills", len(s.Profile.Skills)),
			zap.String("error", s.Error),
		)
	})

	resumePath, _ := cmd.Flags().GetString("resume")
	start(ctx, e, resumePath)

	for {
		_, action, err := dashboardPrompt.Run()
		if err != nil {
			e.logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleDashboardAction(ctx, e, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			e.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// start runs the first analysis and the agent poll side by side.
func start(ctx context.Context, e *env, resumePath string) {
	g, gctx := errgroup.WithContext(ctx)

	if resumePath != "" {
		g.Go(func() error {
			text, err := resume.Load(resumePath, os.Stdin)
			if err != nil {
				// The agent poll keeps running.
				e.logger.Error("loading a resume", zap.Error(err), zap.String("path", resumePath))
				return nil
			}
			// The failure is already in the store.
			_, _ = e.session.AnalyzeResume(gctx, text)
			return nil
		})
	}

	g.Go(func() error {
		e.session.RefreshAgents(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		e.logger.Error("starting the dashboard", zap.Error(err))
	}

	if resumePath != "" {
		printStoreState(e)
	}
	renderAgents(os.Stdout, e.session.Agents())
}

func handleDashboardAction(ctx context.Context, e *env, action string) error {
	switch action {
	case PromptAnalyze:
		path, err := promptText("Resume file", true)
		if err != nil {
			return err
		}
		text, err := resume.Load(path, os.Stdin)
		if err != nil {
			e.logger.Error("loading a resume", zap.Error(err), zap.String("path", path))
			return nil
		}
		_, _ = e.session.AnalyzeResume(ctx, text)
		printStoreState(e)
		return nil
	case PromptProfile:
		renderProfile(os.Stdout, e.session.Store.Profile())
		return nil
	case PromptMatchSample:
		if _, err := e.session.MatchSample(ctx); err != nil {
			printStoreError(e)
			return nil
		}
		renderMatches(os.Stdout, e.session.Matches())
		return nil
	case PromptMatchFile:
		return matchFromFile(ctx, e)
	case PromptShowMatches:
		renderMatches(os.Stdout, e.session.Matches())
		return nil
	case PromptCoverLetter:
		return coverLetterForMatch(ctx, e)
	case PromptDraftLetter:
		return coverLetterForDraft(ctx, e)
	case PromptCoach:
		return coachInteractive(ctx, e)
	case PromptDismiss:
		return dismissMatches(e)
	case PromptMatchesToFile:
		dumpMatches(e, e.session.Matches())
		return nil
	case PromptFilters:
		renderFilters(os.Stdout, e.filters.Describe())
		return nil
	case PromptAgents:
		renderAgents(os.Stdout, e.session.RefreshAgents(ctx))
		return nil
	case PromptExit:
		e.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func matchFromFile(ctx context.Context, e *env) error {
	path, err := promptText("Jobs file", true)
	if err != nil {
		return err
	}

	items, err := jobs.LoadFile(path)
	if err != nil {
		e.logger.Error("loading jobs", zap.Error(err), zap.String("filename", path))
		return nil
	}

	if _, err := e.session.MatchJobs(ctx, items); err != nil {
		printStoreError(e)
		return nil
	}
	renderMatches(os.Stdout, e.session.Matches())
	return nil
}

func coverLetterForMatch(ctx context.Context, e *env) error {
	m, ok, err := selectMatch(e.session.Matches())
	if err != nil || !ok {
		return err
	}

	_, _ = e.session.WriteCoverLetter(ctx, m.Job)
	renderCoverLetter(os.Stdout, e.session.CoverLetterView())
	return nil
}

func coverLetterForDraft(ctx context.Context, e *env) error {
	var draft types.JobDraft
	fields := []struct {
		label    string
		required bool
		target   *string
	}{
		{"Job title", true, &draft.Title},
		{"Company", false, &draft.Company},
		{"Location", false, &draft.Location},
		{"Description", false, &draft.Description},
	}

	for _, f := range fields {
		value, err := promptText(f.label, f.required)
		if err != nil {
			return err
		}
		*f.target = value
	}

	_, _ = e.session.WriteDraftCoverLetter(ctx, draft)
	renderCoverLetter(os.Stdout, e.session.CoverLetterView())
	return nil
}

func coachInteractive(ctx context.Context, e *env) error {
	role, err := promptText("Role", true)
	if err != nil {
		return err
	}
	company, err := promptText("Company (optional)", false)
	if err != nil {
		return err
	}

	_, _ = e.session.CoachPrep(ctx, role, company)
	renderCoaching(os.Stdout, e.session.CoachingView())
	return nil
}

func dismissMatches(e *env) error {
	excludeFile := e.config.Filters.ExcludeFile
	if excludeFile == "" {
		fmt.Fprintln(os.Stdout, "Set filters.exclude-file to dismiss jobs.")
		return nil
	}

	matches := e.session.Matches()
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches.")
		return nil
	}

	items := make([]string, 0, len(matches)+2)
	for _, m := range matches {
		items = append(items, matchLabel(m))
	}

	dismissPrompt := promptui.Select{
		Label: "Choose a job to dismiss and press ENTER",
		Items: append(items, PromptDismissAll, PromptBack),
	}

	idx, selected, err := dismissPrompt.Run()
	if err != nil {
		return err
	}

	var dismissed []types.JobItem
	switch selected {
	case PromptBack:
		return nil
	case PromptDismissAll:
		for _, m := range matches {
			dismissed = append(dismissed, m.Job)
		}
	default:
		dismissed = append(dismissed, matches[idx].Job)
	}

	added, err := filtering.Dismiss(excludeFile, dismissed...)
	if err != nil {
		return err
	}

	e.logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", added))
	return nil
}

func selectMatch(matches []types.MatchResult) (types.MatchResult, bool, error) {
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches. Match jobs first.")
		return types.MatchResult{}, false, nil
	}

	items := make([]string, 0, len(matches)+1)
	for _, m := range matches {
		items = append(items, fmt.Sprintf("[%5.1f] %s", m.DisplayScore(), matchLabel(m)))
	}

	matchPrompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: append(items, PromptBack),
	}

	idx, selected, err := matchPrompt.Run()
	if err != nil {
		return types.MatchResult{}, false, err
	}
	if selected == PromptBack {
		return types.MatchResult{}, false, nil
	}

	return matches[idx], true, nil
}

func promptText(label string, required bool) (string, error) {
	p := promptui.Prompt{Label: label}
	if required {
		p.Validate = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("value is required")
			}
			return nil
		}
	}

	value, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func printStoreState(e *env) {
	if printStoreError(e) {
		return
	}
	renderProfile(os.Stdout, e.session.Store.Profile())
}

func printStoreError(e *env) bool {
	msg, ok := e.session.Store.Error()
	if ok {
		fmt.Fprintln(os.Stdout, msg)
	}
	return ok
}
