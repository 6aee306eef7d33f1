// Package main is the entry point for gmail-sender.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shineum/gmail-hotkey-sender/internal/cli"
	"github.com/shineum/gmail-hotkey-sender/internal/env"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	code := cli.Run(ctx, os.Args[1:], cli.Options{
		Env:    env.OS{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	stop()
	os.Exit(code)
}
