package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cedana/graphbench/cmd"
)

// Set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	// Grandparent context to deal with OS interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx, Version); err != nil {
		os.Exit(1)
	}
}
