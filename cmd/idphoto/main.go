package main

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/matzehuels/idphoto/internal/cli"
	"github.com/matzehuels/idphoto/pkg/buildinfo"
)

func main() {
	if err := run(context.Background()); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		os.Exit(1)
	}
}

// run executes the root command. fang prints any returned error.
func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	defer c.Close()

	return fang.Execute(ctx, c.RootCommand(),
		fang.WithVersion(buildinfo.Version),
		fang.WithCommit(buildinfo.Commit),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
}
