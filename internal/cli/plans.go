package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/swapstack/pkg/errors"
	"github.com/matzehuels/swapstack/pkg/perm"
	"github.com/matzehuels/swapstack/pkg/pipeline"
)

// plansCommand creates the plans command.
func (c *CLI) plansCommand() *cobra.Command {
	var (
		itemsStr string
		limit    int
		workers  int
		output   string
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "plans <elements> <level>",
		Short: "Generate the swap plans for a level",
		Long: `Generate every swap plan at the given level for the given number of
elements, in canonical order. Each plan is a sequence of exactly <level>
pairwise swaps, applied left to right.

With --items, each plan is also applied to the comma-separated item list and
the resulting arrangement is shown next to it. With --output, the plans are
written to a JSON file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			elements, err := strconv.Atoi(args[0])
			if err != nil {
				return apperrors.New(apperrors.ErrCodeInvalidInput,
					"elements must be an integer, got %q", args[0])
			}
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return apperrors.New(apperrors.ErrCodeInvalidInput,
					"level must be an integer, got %q", args[1])
			}

			items := parseItems(itemsStr)
			if len(items) == 0 {
				items = c.cfg().Items
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating level %d plans...", level))
			spinner.Start()

			result, err := runner.Execute(ctx, pipeline.Options{
				Elements: elements,
				Level:    level,
				Limit:    limit,
				Workers:  workers,
				Items:    items,
				Refresh:  refresh,
			})
			if err != nil {
				spinner.StopWithError("Generation failed")
				return fmt.Errorf("plans: %w", err)
			}
			spinner.Stop()

			printPlans(result, elements)

			printSuccess("Generated %d plans at level %d", len(result.Plans), level)
			if output != "" {
				if err := perm.WritePlansFile(result.Plans, output); err != nil {
					return fmt.Errorf("plans: %w", err)
				}
				printFile(output)
			}
			printStats(len(result.Plans), 0, result.CacheInfo.PlansHit)

			if level < elements-1 {
				printNewline()
				printNextStep("Draw the plan tree", fmt.Sprintf("swapstack graph %d %d", elements, level))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&itemsStr, "items", "", "comma-separated items to run every plan against")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many plans (0 = all)")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of parallel generation workers")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the plans to a JSON file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the cache entirely")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite any cached result")

	return cmd
}

// printPlans writes the generated plans to stdout, one per line. When the
// plans were applied to items, each resulting arrangement is shown next to
// its plan; otherwise the plan is applied to the identity arrangement.
func printPlans(result *pipeline.Result, elements int) {
	identity := perm.Seq(elements)
	for i, plan := range result.Plans {
		if result.Rows != nil {
			fmt.Printf("%s = %v\n", StyleHighlight.Render(plan.String()), result.Rows[i])
			continue
		}
		row, _ := perm.Apply(identity, plan)
		fmt.Printf("%s = %v\n", StyleHighlight.Render(plan.String()), row)
	}
}
