package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arslanca/portfolio-web/internal/contrib"
	"github.com/arslanca/portfolio-web/internal/termview"
)

var activityYear int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the GitHub contribution calendar",
	Args:  cobra.NoArgs,
	RunE:  runActivity,
}

func init() {
	activityCmd.Flags().IntVar(&activityYear, "year", 0, "Year to show (default: most recent)")
}

func runActivity(cmd *cobra.Command, args []string) error {
	resp, err := newClient(cmd).Contributions(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching contributions: %w", err)
	}

	years := contrib.GroupByYear(resp.Days)
	selected, ok := contrib.Select(years, activityYear)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No contributions recorded.")
		return nil
	}
	if activityYear != 0 && selected.Year != activityYear {
		logger.Warn("year not available, showing the most recent", "year", activityYear)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, termview.RenderYears(years, selected.Year))
	fmt.Fprintln(out)
	fmt.Fprint(out, termview.RenderCalendar(selected))
	return nil
}
