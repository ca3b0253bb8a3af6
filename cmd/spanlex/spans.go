package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/paul-lalonde/edstyle/document"
	"github.com/paul-lalonde/edstyle/spanfile"
	"github.com/paul-lalonde/edstyle/style"
)

func newSpansCmd(a *app) *cobra.Command {
	var langName, format string
	cmd := &cobra.Command{
		Use:   "spans FILE...",
		Short: "Print the highlight spans of each file",
		Long: `Print the highlight spans of each file, one per line as
FILE:LINE:COL-ENDCOL CATEGORY TEXT. Lines and columns count from 1 and
columns are in characters. With --format spanfile the output is the
span definitions edcolor would write for a single file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text":
			case "spanfile":
				if len(args) != 1 {
					return fmt.Errorf("--format spanfile takes one file, got %d", len(args))
				}
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			results := make([]string, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					doc, _, err := a.load(langName, path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					var b strings.Builder
					if format == "spanfile" {
						err = writeSpanfile(&b, doc, a)
					} else {
						writeSpans(&b, path, doc)
					}
					results[i] = b.String()
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for _, r := range results {
				if _, err := io.WriteString(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&langName, "lang", "l", "", "language name (default: by file extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or spanfile")
	return cmd
}

// writeSpans prints doc's spans in text order.
func writeSpans(w io.Writer, path string, doc *document.Document) {
	spans := doc.Highlight()
	style.Sort(spans)
	text := []rune(doc.Text())
	for _, sp := range spans {
		line, col := doc.Position(sp.Start)
		_, endCol := doc.Position(sp.End)
		fmt.Fprintf(w, "%s:%d:%d-%d\t%s\t%q\n", path, line+1, col+1, endCol+1, sp.Category, string(text[sp.Start:sp.End]))
	}
}

func writeSpanfile(w io.Writer, doc *document.Document, a *app) error {
	p, err := a.cfg.StylePalette()
	if err != nil {
		return err
	}
	runs := spanfile.Colorize(doc.Len(), doc.Highlight(), p)
	return spanfile.Encode(w, 0, runs, spanfile.DefaultChunk)
}
