package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/swapstack/pkg/errors"
	"github.com/matzehuels/swapstack/pkg/perm"
	"github.com/matzehuels/swapstack/pkg/pipeline"
)

// treeWarnNodes is the node count above which tree rendering is slow enough
// to warn about.
const treeWarnNodes = 500

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		itemsStr   string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "graph <elements> <level>",
		Short: "Render the plan tree",
		Long: `Render the plan tree for the given number of elements down to the given
level. Every path from the root to a node at depth L is one level-L swap
plan; branches that would repeat an arrangement are pruned.

Output formats are dot (Graphviz source) and svg. With --items, tree nodes
are labelled with the item arrangements instead of element indices.`,
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

			formats := parseFormats(formatsStr)

			items := parseItems(itemsStr)
			if len(items) == 0 {
				items = c.cfg().Items
			}

			base := output
			if base == "" {
				base = fmt.Sprintf("plantree_%d_%d", elements, level)
			}

			if size := perm.TreeSize(elements, level); size > treeWarnNodes {
				printWarning("Plan tree has %d nodes, rendering may take a while", size)
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, "Rendering plan tree...")
			spinner.Start()

			artifacts, cacheHit, err := runner.RenderTreeWithCacheInfo(ctx, pipeline.Options{
				Elements: elements,
				Level:    level,
				Items:    items,
				Formats:  formats,
				Refresh:  refresh,
			})
			if err != nil {
				spinner.StopWithError("Rendering failed")
				return fmt.Errorf("graph: %w", err)
			}
			spinner.Stop()

			printSuccess("Rendered plan tree for %d elements down to level %d", elements, level)
			for _, format := range formats {
				path := base + "." + format
				if err := writeArtifact(path, artifacts[format]); err != nil {
					return fmt.Errorf("graph: write %s: %w", path, err)
				}
				printFile(path)
			}
			printStats(0, perm.TreeSize(elements, level), cacheHit)

			return nil
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, or both comma-separated")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path without extension (default plantree_<elements>_<level>)")
	cmd.Flags().StringVar(&itemsStr, "items", "", "comma-separated items used as node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the cache entirely")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite any cached result")

	return cmd
}
