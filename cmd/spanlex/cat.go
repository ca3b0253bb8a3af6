package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/paul-lalonde/edstyle/spanfile"
)

func newCatCmd(a *app) *cobra.Command {
	var langName, spansPath, colorMode string
	cmd := &cobra.Command{
		Use:   "cat FILE",
		Short: "Print a file colored by its highlight spans",
		Long: `Print a file in the terminal with the colors edcolor would give it.
With --spans, the colors come from a saved spans file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.load(langName, args[0])
			if err != nil {
				return err
			}
			var (
				runs  []spanfile.Run
				start int
			)
			if spansPath != "" {
				data, err := os.ReadFile(spansPath)
				if err != nil {
					return err
				}
				runs, start, err = spanfile.Parse(string(data), doc.Len())
				if err != nil {
					return fmt.Errorf("%s: %w", spansPath, err)
				}
			} else {
				p, err := a.cfg.StylePalette()
				if err != nil {
					return err
				}
				runs = spanfile.Colorize(doc.Len(), doc.Highlight(), p)
			}

			r := lipgloss.NewRenderer(cmd.OutOrStdout())
			switch colorMode {
			case "auto":
			case "always":
				r.SetColorProfile(termenv.TrueColor)
			case "never":
				r.SetColorProfile(termenv.Ascii)
			default:
				return fmt.Errorf("unknown color mode %q", colorMode)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), render(r, []rune(doc.Text()), start, runs))
			return err
		},
	}
	cmd.Flags().StringVarP(&langName, "lang", "l", "", "language name (default: by file extension)")
	cmd.Flags().StringVarP(&spansPath, "spans", "s", "", "read the runs from this spans file")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "color output: auto, always or never")
	return cmd
}

// render styles text with the runs that begin at offset start. Text
// outside the runs is written plain and hidden runs are left out.
func render(r *lipgloss.Renderer, text []rune, start int, runs []spanfile.Run) string {
	var b strings.Builder
	start = min(start, len(text))
	b.WriteString(string(text[:start]))
	off := start
	for _, run := range runs {
		end := min(off+run.Len, len(text))
		if !run.Attr.Hidden {
			writeStyled(&b, runStyle(r, run.Attr), string(text[off:end]))
		}
		off = end
	}
	b.WriteString(string(text[off:]))
	return b.String()
}

// writeStyled renders each line of s on its own so that lipgloss never
// sees a newline and pads the block.
func writeStyled(b *strings.Builder, st lipgloss.Style, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(st.Render(line))
		}
	}
}

func runStyle(r *lipgloss.Renderer, a spanfile.Attr) lipgloss.Style {
	st := r.NewStyle().
		TabWidth(lipgloss.NoTabConversion).
		Bold(a.Bold).
		Italic(a.Italic)
	if a.Fg != nil {
		st = st.Foreground(lipgloss.Color(spanfile.FormatColor(a.Fg)))
	}
	if a.Bg != nil {
		st = st.Background(lipgloss.Color(spanfile.FormatColor(a.Bg)))
	}
	return st
}
