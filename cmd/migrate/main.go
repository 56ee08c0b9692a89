package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"dogwalk-app-go/internal/config"
	"dogwalk-app-go/internal/db"
	"dogwalk-app-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()
	if err := run(os.Args[1:], log); err != nil {
		log.Critical("migrate: failed", "err", err)
		os.Exit(1)
	}
}

func run(args []string, log logger.Logger) error {
	var direction string
	var dsn string

	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVarP(&direction, "direction", "d", db.DirectionUp, "migration direction: up or down")
	flagSet.StringVar(&dsn, "dsn", "", "postgres URL (default: built from DB_* settings)")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return fmt.Errorf("unexpected argument: %s", extra[0])
	}

	if dsn == "" {
		cfg, err := config.Load(log)
		if err != nil {
			return err
		}
		dsn = cfg.DB.GetDSN()
	}

	log.Info("migrate: applying", "direction", direction)
	if err := db.Migrate(dsn, direction); err != nil {
		return err
	}
	log.Info("migrate: done", "direction", direction)
	return nil
}
