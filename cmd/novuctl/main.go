package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kursadbilgin/novu-go/internal/novuctl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := novuctl.NewApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "novuctl:", err)
		stop()
		os.Exit(1)
	}
}
