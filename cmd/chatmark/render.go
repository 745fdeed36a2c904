package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/csams/chatmark/internal/markup"
	"github.com/csams/chatmark/internal/render"
	"pkt.systems/pslog"
)

func newRenderCmd() *cobra.Command {
	var (
		modeName    string
		formatName  string
		markerColor string
	)

	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Scan markup and print the styled result",
		Long: `Scan markup and print the styled result.

The text is taken from the arguments, joined with spaces, or from stdin when
no arguments are given. In edit mode the markers are kept and dimmed; in
display mode they are removed.`,
		Example: `  chatmark render 'this is *bold* and _italic_'
  echo '~gone~' | chatmark render --mode edit --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := markup.ParseMode(modeName)
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(formatName)
			if err != nil {
				return err
			}
			input, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			res := markup.Scan(input, mode)
			pslog.Ctx(cmd.Context()).Debug("markup scanned", "mode", mode.String(), "len", res.Len(), "spans", len(res.Spans))

			out := cmd.OutOrStdout()
			return render.Write(out, format, res, render.Options{
				MarkerColor: markerColor,
				Renderer:    lipgloss.NewRenderer(out),
			})
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", markup.DisplayStripMarkers.String(), "scan mode: edit or display")
	cmd.Flags().StringVarP(&formatName, "format", "f", string(render.FormatANSI), "output format: ansi, html, json or plain")
	cmd.Flags().StringVar(&markerColor, "marker-color", render.DefaultMarkerColor, "colour of kept markers in ansi output")
	return cmd
}

// readInput joins the arguments, or reads r when there are none. A single
// trailing line break from stdin is dropped.
func readInput(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
