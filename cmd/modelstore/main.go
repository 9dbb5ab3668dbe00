package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/custodia-labs/modelstore/internal/adapters/driving/cli"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.SetBuildInfo(version, commit)
	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(cli.ExitCode(err))
	}
}
