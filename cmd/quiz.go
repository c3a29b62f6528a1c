package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/arslanca/portfolio-web/internal/api"
	"github.com/arslanca/portfolio-web/internal/quiz"
)

// skipOption is the select value for dismissing the quiz.
const skipOption = ""

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the diagnostic quiz",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd.Context(), newClient(cmd), cmd.OutOrStdout(), chooseOption)
	},
}

type quizBackend interface {
	RandomScenario(ctx context.Context) (*api.Scenario, error)
	VerifyScenario(ctx context.Context, req api.VerifyRequest) (*api.VerifyResult, error)
}

// chooser returns the id of the picked option, or skipOption.
type chooser func(ctx context.Context, s *api.Scenario) (string, error)

func runQuiz(ctx context.Context, b quizBackend, out io.Writer, choose chooser) error {
	scenario, err := b.RandomScenario(ctx)
	if err != nil {
		return fmt.Errorf("fetching scenario: %w", err)
	}

	fmt.Fprintf(out, "Incident Report: %s\n", scenario.Title)
	fmt.Fprintf(out, "CPU %d%%  LATENCY %dms  MEM %dMB\n",
		scenario.SystemState.CPULoad, scenario.SystemState.Latency, scenario.SystemState.MemoryUsage)
	if scenario.Description != "" {
		fmt.Fprintln(out, scenario.Description)
	}
	fmt.Fprintln(out)

	optionID, err := choose(ctx, scenario)
	if err != nil {
		return err
	}

	outcome := quiz.Skipped
	if optionID != skipOption {
		res, err := b.VerifyScenario(ctx, api.VerifyRequest{ScenarioID: scenario.ID, SelectedOptionID: optionID})
		if err != nil {
			logger.Warn("verifying answer", "scenario", scenario.ID, "err", err)
		} else {
			outcome = quiz.Classify(res.UserLevel)
			if res.Message != "" {
				fmt.Fprintln(out, res.Message)
			}
		}
	}

	fmt.Fprintf(out, "Role: %s, continue at %s\n", outcome.Role, outcome.Page.Path())
	if title, body, ok := quiz.Welcome(outcome.Role, outcome.Page); ok {
		fmt.Fprintf(out, "%s %s\n", title, body)
	}
	return nil
}

func chooseOption(ctx context.Context, s *api.Scenario) (string, error) {
	opts := make([]huh.Option[string], 0, len(s.Options)+1)
	for i, o := range s.Options {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%02d  %s", i+1, o.Title), o.ID))
	}
	opts = append(opts, huh.NewOption("System Override (Skip)", skipOption))

	var choice string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How do you respond?").
				Options(opts...).
				Value(&choice),
		),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return skipOption, nil
	}
	return choice, err
}
