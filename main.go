package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/mark3labs/tfgen/cmd"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// fang prints the returned error, so only the exit status is set here.
	if err := fang.Execute(ctx, cmd.GetRootCommand(version), fang.WithVersion(version)); err != nil {
		stop()
		os.Exit(1)
	}
}
