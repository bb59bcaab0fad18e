package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/swapstack/pkg/errors"
	"github.com/matzehuels/swapstack/pkg/perm"
	"github.com/matzehuels/swapstack/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		itemsStr string
		limit    int
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "browse <elements> <level>",
		Short: "Browse swap plans interactively",
		Long: `Browse every swap plan at the given level in an interactive list. Each row
shows a plan next to the arrangement it produces; selecting a plan steps
through its swaps one at a time.

Items default to the element indices unless --items or the configured item
list is set.`,
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
			if len(items) == 0 {
				items = make([]string, 0, elements)
				for i := 0; i < elements; i++ {
					items = append(items, strconv.Itoa(i))
				}
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
				Items:    items,
			})
			if err != nil {
				spinner.StopWithError("Generation failed")
				return fmt.Errorf("browse: %w", err)
			}
			spinner.Stop()

			if len(result.Plans) == 0 {
				printDetail("No plans at this level")
				return nil
			}

			m := NewPlanBrowserModel(elements, level, items, result.Plans, result.Rows)
			p := tea.NewProgram(m)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&itemsStr, "items", "", "comma-separated items to rearrange")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many plans (0 = all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the cache entirely")

	return cmd
}

// =============================================================================
// PlanBrowserModel - Interactive plan browsing
// =============================================================================

// PlanBrowserModel is the bubbletea model for browsing swap plans.
type PlanBrowserModel struct {
	Elements int
	Level    int
	Items    []string
	Plans    []perm.Plan
	Rows     [][]string
	Cursor   int
	Height   int
	Offset   int
	Detail   bool
}

// NewPlanBrowserModel creates a new plan browser model.
func NewPlanBrowserModel(elements, level int, items []string, plans []perm.Plan, rows [][]string) PlanBrowserModel {
	return PlanBrowserModel{
		Elements: elements,
		Level:    level,
		Items:    items,
		Plans:    plans,
		Rows:     rows,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m PlanBrowserModel) Init() tea.Cmd {
	return nil
}

func (m PlanBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Detail && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Detail && m.Cursor < len(m.Plans)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlanBrowserModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

// listView renders the windowed plan list.
func (m PlanBrowserModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Swap Plans · %d elements · level %d", m.Elements, m.Level)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ inspect  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Plans) {
		end = len(m.Plans)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, m.Plans[i].String(), strings.Join(m.Rows[i], " ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Plan", "Result").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Plans))))

	return b.String()
}

// detailView renders the selected plan applied one swap at a time.
func (m PlanBrowserModel) detailView() string {
	var b strings.Builder

	plan := m.Plans[m.Cursor]

	b.WriteString(StyleTitle.Render("Plan " + plan.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("⏎/esc back  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{{"0", "—", strings.Join(m.Items, " ")}}
	for i, stage := range planStages(m.Items, plan) {
		swap := fmt.Sprintf("%d ↔ %d", plan[i].First, plan[i].Second)
		rows = append(rows, []string{strconv.Itoa(i + 1), swap, strings.Join(stage, " ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Step", "Swap", "Arrangement").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == len(rows)-1 {
				return StyleSuccess
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())

	return b.String()
}

// planStages applies the plan one swap at a time and returns the arrangement
// after each swap. Stage i is the result of the first i+1 swaps.
func planStages(items []string, plan perm.Plan) [][]string {
	stages := make([][]string, 0, len(plan))
	for i := 1; i <= len(plan); i++ {
		stage, _ := perm.Apply(items, plan[:i])
		stages = append(stages, stage)
	}
	return stages
}
