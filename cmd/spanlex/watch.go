package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paul-lalonde/edstyle/internal/logger"
	"github.com/paul-lalonde/edstyle/internal/watch"
	"github.com/paul-lalonde/edstyle/style"
)

func newWatchCmd(a *app) *cobra.Command {
	var langName string
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Restyle a file each time it is saved",
		Long: `Watch a file and print a summary of its highlight spans each time it
changes, waiting for the configured debounce interval after the last
write.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			l, err := a.language(langName, path)
			if err != nil {
				return err
			}
			log := logger.L(ctx).With(zap.String("file", path))

			w, err := watch.New(path, a.cfg.Debounce, log)
			if err != nil {
				return err
			}
			defer w.Stop()
			changed, err := w.Start()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			restyle := func() {
				doc, _, err := a.load(l.Name, path)
				if err != nil {
					log.Warn("restyle failed", zap.Error(err))
					return
				}
				start := time.Now()
				spans := doc.Highlight()
				log.Debug("restyled", zap.Int("spans", len(spans)), zap.Duration("took", time.Since(start)))
				summarize(out, path, doc.LineCount(), spans)
			}

			restyle()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-changed:
					restyle()
				}
			}
		},
	}
	cmd.Flags().StringVarP(&langName, "lang", "l", "", "language name (default: by file extension)")
	return cmd
}

// summarize prints one line with the span count of each category.
func summarize(w io.Writer, path string, lines int, spans []style.Span) {
	counts := make(map[style.Category]int)
	for _, sp := range spans {
		counts[sp.Category]++
	}
	fmt.Fprintf(w, "%s: %d lines, %d spans", path, lines, len(spans))
	for _, c := range style.Categories() {
		if n := counts[c]; n > 0 {
			fmt.Fprintf(w, " %s=%d", c, n)
		}
	}
	fmt.Fprintln(w)
}
