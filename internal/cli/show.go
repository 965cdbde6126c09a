package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/souper/internal/config"
	"github.com/matzehuels/souper/pkg/errors"
	pkgio "github.com/matzehuels/souper/pkg/io"
	"github.com/matzehuels/souper/pkg/soup"
)

// showCommand creates the show command for inspecting a report.
func (c *CLI) showCommand() *cobra.Command {
	var (
		output      string
		manifest    string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the dependencies recorded in a SOUP report",
		Long: `Show prints every dependency in the report with its manifest, version and how
many of its metadata fields are filled in. Use --interactive to browse the
report manifest by manifest.`,
		Example: `  # Print the report as a table
  souper show

  # Only dependencies of one manifest
  souper show --manifest web/package.json

  # Browse interactively
  souper show -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := pkgio.ImportJSON(output)
			if err != nil {
				return err
			}
			if manifest != "" {
				deps, ok := snap[manifest]
				if !ok {
					return errors.New(errors.ErrCodeInvalidInput, "%s: no manifest %q in report", output, manifest)
				}
				snap = soup.Snapshot{manifest: deps}
			}
			if snap.Count() == 0 {
				printInfo(c.Out, "%s records no dependencies", output)
				return nil
			}
			if interactive {
				_, err := tea.NewProgram(NewReportModel(snap), tea.WithAltScreen()).Run()
				return err
			}
			renderReport(c.Out, snap)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutput, "report file")
	cmd.Flags().StringVar(&manifest, "manifest", "", "only show this manifest path")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the report in a terminal UI")
	_ = cmd.MarkFlagFilename("output", "json")

	return cmd
}

// renderReport writes the report as a table followed by a one-line summary.
func renderReport(w io.Writer, snap soup.Snapshot) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Manifest", "Dependency", "Version", "Meta").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0 || col == 3:
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	complete := 0
	for _, path := range snap.Paths() {
		for _, d := range snap[path].Items() {
			t.Row(path, d.Name, d.Version, metaSummary(d.Meta))
			if len(d.Meta) > 0 && d.Meta.Filled() == len(d.Meta) {
				complete++
			}
		}
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, "  "+strings.Join([]string{
		StyleNumber.Render(fmt.Sprint(len(snap))) + " manifests",
		StyleNumber.Render(fmt.Sprint(snap.Count())) + " dependencies",
		StyleNumber.Render(fmt.Sprint(complete)) + " fully annotated",
	}, StyleDim.Render(" · ")))
}

// metaSummary renders metadata as "filled/total", or a dash when there is none.
func metaSummary(m soup.Metadata) string {
	if len(m) == 0 {
		return "—"
	}
	return fmt.Sprintf("%d/%d", m.Filled(), len(m))
}
