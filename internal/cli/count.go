package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/swapstack/pkg/errors"
	"github.com/matzehuels/swapstack/pkg/pipeline"
)

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	var (
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "count [elements]",
		Short: "Count swap plans at every level",
		Long: `Count the number of swap plans at every level for the given number of
elements. Level L holds the plans made of exactly L pairwise swaps, so the
per-level counts sum to elements factorial.

If elements is omitted, the configured default is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			elements := c.cfg().Elements
			if elements == 0 {
				elements = pipeline.DefaultElements
			}
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return apperrors.New(apperrors.ErrCodeInvalidInput,
						"elements must be an integer, got %q", args[0])
				}
				elements = n
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Counting plans for %d elements...", elements))
			spinner.Start()

			counts, cacheHit, err := runner.CountWithCacheInfo(ctx, pipeline.Options{
				Elements: elements,
				Refresh:  refresh,
			})
			if err != nil {
				spinner.StopWithError("Counting failed")
				return fmt.Errorf("count: %w", err)
			}
			spinner.Stop()

			printCountsTable(counts)
			printKeyValue("Total", fmt.Sprintf("%d = %d!", counts.Total, counts.Elements))
			printStats(counts.Total, 0, cacheHit)

			if counts.Elements > 1 {
				printNewline()
				printNextStep("Generate the plans for a level", fmt.Sprintf("swapstack plans %d 1", counts.Elements))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the cache entirely")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite any cached result")

	return cmd
}

// printCountsTable renders per-level plan counts as a bordered table.
func printCountsTable(counts *pipeline.Counts) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(counts.Levels))
	for level, n := range counts.Levels {
		rows[level] = []string{strconv.Itoa(level), strconv.Itoa(n)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Plans").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleNumber
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Println(t.Render())
}
