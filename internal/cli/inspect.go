package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/view"
)

// inspectCommand creates the inspect command for browsing a view.
func (c *CLI) inspectCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "inspect [view.json]",
		Short: "Browse the nodes of a view",
		Long: `Browse the nodes of a view written by 'layout' or 'render -f json'.

The interactive list shows every view node indented under its parent with its
position, size and the number of copies of its semantic element. Use --list to
print the nodes without the interactive browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := view.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load view %s: %w", args[0], err)
			}
			if list {
				printViewSummary(v)
				return nil
			}
			_, err = tea.NewProgram(NewNodeListModel(v), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print the nodes instead of opening the browser")

	return cmd
}

// printViewSummary prints the view header and one line per node.
func printViewSummary(v view.View) {
	printKeyValue("Id", v.ID)
	printKeyValue("Name", v.Name)
	printKeyValue("Bounds", fmt.Sprintf("%gx%g", v.Bounds.Width(), v.Bounds.Height()))
	printKeyValue("Nodes", fmt.Sprintf("%d", len(v.ViewNodes)))
	printNewline()
	depth := nodeDepths(v.ViewNodes)
	for _, n := range v.ViewNodes {
		indent := strings.Repeat("  ", depth[n.ViewNodeID])
		printDetail("%s%s  (%g,%g %gx%g)", indent, n.Name, n.X, n.Y, n.Width, n.Height)
	}
}
