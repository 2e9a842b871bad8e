// ABOUTME: Export command writing the journal as JSON or a standalone HTML report
// ABOUTME: Writes to stdout by default or to a file with --out

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"moodlog/internal/export"
)

func newExportCmd(configPath *string) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as JSON or HTML",
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			var w io.Writer = os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			exporter := export.NewExporter(a.store)
			switch format {
			case "json":
				return exporter.WriteJSON(ctx, w)
			case "html":
				return exporter.WriteHTML(ctx, w)
			default:
				return fmt.Errorf("unknown format %q: expected json or html", format)
			}
		}),
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format (json or html)")
	cmd.Flags().StringVar(&out, "out", "", "output file (defaults to stdout)")
	return cmd
}
