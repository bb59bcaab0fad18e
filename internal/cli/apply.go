package cli

import (
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/swapstack/pkg/errors"
	"github.com/matzehuels/swapstack/pkg/perm"
)

// applyCommand creates the apply command.
func (c *CLI) applyCommand() *cobra.Command {
	var (
		planStr  string
		itemsStr string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a swap plan to a list of items",
		Long: `Apply a single swap plan to a comma-separated list of items and print the
resulting arrangement. The plan is given as space-separated first:second
pairs, applied left to right; an empty plan leaves the items unchanged.

Example:

  swapstack apply --items a,b,c --plan "0:1 1:2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := parsePlan(planStr)
			if err != nil {
				return err
			}

			items := parseItems(itemsStr)
			if len(items) == 0 {
				items = c.cfg().Items
			}
			if err := apperrors.ValidateItems(items); err != nil {
				return err
			}

			result, err := perm.Apply(items, plan)
			if err != nil {
				return err
			}

			printKeyValue("Plan", plan.String())
			printKeyValue("Items", strings.Join(items, ", "))
			printKeyValue("Result", strings.Join(result, ", "))

			return nil
		},
	}

	cmd.Flags().StringVar(&planStr, "plan", "", "swap plan as space-separated first:second pairs")
	cmd.Flags().StringVar(&itemsStr, "items", "", "comma-separated items to rearrange")

	return cmd
}
