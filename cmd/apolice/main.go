package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/apolice/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	baseURL := flag.String("base-url", "", "override the policy API base URL (optional)")
	refresh := flag.Duration("refresh", 0, "re-run the last search at this interval; 0 disables")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, BaseURL: *baseURL}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "refresh" {
			opts.Refresh = *refresh
			opts.RefreshSet = true
		}
	})

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "apolice: %v\n", err)
		return 1
	}
	return 0
}
