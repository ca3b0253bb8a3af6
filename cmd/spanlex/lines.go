package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/paul-lalonde/edstyle/document"
)

func newLinesCmd(a *app) *cobra.Command {
	var offsets []int
	cmd := &cobra.Command{
		Use:   "lines FILE",
		Short: "Print the line index of a file",
		Long: `Print one row per line: its number, start offset, end offset and
text. With --offset, print the line and column of each offset instead.
Offsets are in characters from the start of the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc := document.New(nil, document.WithTabWidth(a.cfg.TabWidth))
			doc.SetText(string(data))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 1, ' ', 0)
			if len(offsets) > 0 {
				fmt.Fprintln(tw, "OFFSET\tLINE\tCOL\tSCREEN")
				for _, off := range offsets {
					line, col := doc.Position(off)
					fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", off, line+1, col+1, doc.DisplayColumn(off)+1)
				}
				return tw.Flush()
			}
			fmt.Fprintln(tw, "LINE\tSTART\tEND\tTEXT")
			for i := 0; i < doc.LineCount(); i++ {
				text, _ := doc.LineText(i)
				start := doc.LineStart(i)
				fmt.Fprintf(tw, "%d\t%d\t%d\t%q\n", i+1, start, start+len([]rune(text)), text)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntSliceVarP(&offsets, "offset", "o", nil, "report the position of these offsets")
	return cmd
}
