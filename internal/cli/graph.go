package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/souper/internal/config"
	"github.com/matzehuels/souper/pkg/errors"
	pkgio "github.com/matzehuels/souper/pkg/io"
	"github.com/matzehuels/souper/pkg/render/nodelink"
)

// graphCommand creates the graph command for rendering a report as a diagram.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		format   string
		out      string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render a SOUP report as a manifest-to-dependency diagram",
		Long: `Graph draws each manifest as a folder node linked to the dependencies it
declares. Dependencies shared by several manifests appear once.

Without --format the format follows the extension of --out, falling back to
DOT. DOT output can be piped into any Graphviz tool.`,
		Example: `  # DOT to stdout
  souper graph | dot -Tpdf > soups.pdf

  # SVG with metadata completeness on each dependency
  souper graph --out soups.svg --detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = formatFromPath(out)
			}
			if err := nodelink.ValidateFormat(format); err != nil {
				return err
			}
			snap, err := pkgio.ImportJSON(output)
			if err != nil {
				return err
			}

			data, err := nodelink.Render(cmd.Context(), snap, format, nodelink.Options{Detailed: detailed})
			if err != nil {
				return err
			}

			if out == "" {
				_, err := c.Out.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "write %s", out)
			}
			printSuccess(c.Out, "Rendered %s", output)
			printFile(c.Out, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutput, "report file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg, png")
	cmd.Flags().StringVar(&out, "out", "", "file to write (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show metadata completeness on dependency nodes")
	_ = cmd.MarkFlagFilename("output", "json")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{nodelink.FormatDOT, nodelink.FormatSVG, nodelink.FormatPNG}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// formatFromPath infers the render format from a file extension.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if nodelink.ValidFormats[ext] {
		return ext
	}
	return nodelink.FormatDOT
}
