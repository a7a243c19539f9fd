package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/smartview/internal/cli"
	sverrors "github.com/matzehuels/smartview/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		os.Exit(130) // Standard shell convention for SIGINT
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitCode(err))
}

// exitCode is 2 for bad input or settings and 1 for everything else.
func exitCode(err error) int {
	switch sverrors.RootCode(err) {
	case sverrors.ErrCodeInvalidInput, sverrors.ErrCodeInvalidConfig:
		return 2
	}
	return 1
}

func run(ctx context.Context) error {
	return cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
}
