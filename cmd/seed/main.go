package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"dogwalk-app-go/internal/app"
	"dogwalk-app-go/internal/config"
	"dogwalk-app-go/internal/seed"
	"dogwalk-app-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()
	if err := run(os.Args[1:], log); err != nil {
		log.Critical("seed: failed", "err", err)
		os.Exit(1)
	}
}

func run(args []string, log logger.Logger) error {
	var file string
	var dryRun bool

	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVarP(&file, "file", "f", "seeds/keywords.yaml", "keyword vocabulary YAML file")
	flagSet.BoolVar(&dryRun, "dry-run", false, "parse and check the file without writing")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return fmt.Errorf("unexpected argument: %s", extra[0])
	}

	keywords, err := seed.LoadFile(file)
	if err != nil {
		return err
	}
	log.Info("seed: loaded vocabulary", "file", file, "keywords", len(keywords))
	if dryRun {
		return nil
	}

	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	written, err := app.SeedKeywords(ctx, cfg, keywords, log)
	if err != nil {
		return err
	}
	log.Info("seed: done", "written", written)
	return nil
}
