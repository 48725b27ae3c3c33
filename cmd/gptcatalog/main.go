// Command gptcatalog builds the bilingual GPT catalog site.
//
// It wires the cobra command tree to a context that is canceled on
// SIGINT/SIGTERM, so a build stops between files and a preview server
// shuts down cleanly.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cnucho/gptcatalog/internal/check"
	"github.com/cnucho/gptcatalog/internal/cli"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit})
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "gptcatalog: interrupted")
		return 130
	case errors.Is(err, check.ErrFindings):
		// Findings were already logged.
		return 2
	}
	fmt.Fprintf(os.Stderr, "gptcatalog: %v\n", err)
	return 1
}
