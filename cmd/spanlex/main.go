// Spanlex styles files from the command line: it prints highlight
// spans, line tables and colored text, and checks the language tables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "spanlex: %v\n", err)
		os.Exit(1)
	}
}
