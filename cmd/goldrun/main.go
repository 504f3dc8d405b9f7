package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"goldrun/internal/cli/commands"
	gferrors "goldrun/internal/errors"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := commands.NewRootCommand(version, os.Stdout, os.Stderr)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !gferrors.Is(err, gferrors.KindTestsFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(gferrors.GetExitCode(err))
}
