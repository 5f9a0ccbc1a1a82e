package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ollamamcp/internal/cli"
)

func main() {
	// Graceful shutdown (Ctrl+C / SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ollama-mcp:", err)
		stop()
		os.Exit(1)
	}
}
