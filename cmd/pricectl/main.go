package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"PriceBoard/internal/analyzer"
	"PriceBoard/internal/client"
	"PriceBoard/internal/config"
	"PriceBoard/internal/display"
	"PriceBoard/internal/model"
	"PriceBoard/pkg/logger"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	server := flag.String("server", cfg.Viewer.ServerURL, "PriceBoard server URL")
	resource := flag.String("resource", cfg.Viewer.Resource, "resource key, e.g. oil, gold, rub")
	period := flag.String("period", cfg.Viewer.Period, "history period: all, week, month, 3months, year, 3years")
	watch := flag.Bool("watch", false, "read period names from stdin and refresh the chart for each")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	cfg.Viewer.ServerURL = *server
	cfg.Viewer.Resource = *resource
	cfg.Viewer.Period = *period
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(2)
	}
	initial, err := model.ParsePeriod(cfg.Viewer.Period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "period: %v\n", err)
		os.Exit(2)
	}

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cl := client.New(cfg.Viewer.ServerURL, cfg.Viewer.Timeout, cfg.Proxy)
	name, unit := describe(ctx, cl, cfg.Viewer.Resource)

	term := display.NewTerminal(os.Stdout, name, unit,
		display.WithChartSize(cfg.Viewer.ChartHeight, cfg.Viewer.ChartWidth),
		display.WithColors(!*noColor),
	)
	an := analyzer.New(cl, term, name)

	if initial == model.DefaultPeriod {
		an.Load(ctx, cfg.Viewer.Resource)
	} else {
		an.LoadPrice(ctx, cfg.Viewer.Resource)
		an.RefreshForPeriod(ctx, cfg.Viewer.Resource, initial)
	}

	if !*watch {
		return
	}

	// A second signal after the first falls back to the default exit.
	go func() {
		<-ctx.Done()
		stop()
	}()

	watchPeriods(ctx, os.Stdin, func(p model.Period) {
		res := an.RefreshForPeriod(ctx, cfg.Viewer.Resource, p)
		logger.Debug("refresh finished",
			logger.String("period", string(p)),
			logger.Uint64("seq", res.Seq),
			logger.Bool("stale", res.Stale),
			logger.Int("samples", res.Stats.Count),
			logger.Stringer("high", res.Stats.High),
			logger.Stringer("low", res.Stats.Low),
		)
	})
}

// describe resolves the display name and unit, preferring the server's
// catalog over the built-in one.
func describe(ctx context.Context, cl *client.Client, key string) (string, string) {
	infos, err := cl.FetchResources(ctx)
	if err != nil {
		logger.Debug("fetch resources failed, using built-in catalog", logger.ErrorField(err))
	}
	for _, info := range infos {
		if info.Resource == key {
			return info.Name, info.Unit
		}
	}
	if res, ok := model.LookupResource(key); ok {
		return res.Name, res.Unit
	}
	return key, ""
}
