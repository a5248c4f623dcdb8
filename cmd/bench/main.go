// Нагрузочная проверка бэкенда метрик: записывает серию точек по одной и читает их обратно.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/bench"
	"github.com/chestorix/hawkmon/internal/client"
	"github.com/chestorix/hawkmon/internal/config"
	"github.com/chestorix/hawkmon/internal/logger"
	"github.com/chestorix/hawkmon/internal/models"
)

var (
	flagTenant string
	flagHost   string
	flagPort   int
	flagMetric string
	flagType   string
	flagCount  int
	flagStep   time.Duration
	flagWindow time.Duration
)

func parseFlags() {
	opts := bench.DefaultOptions()
	flag.StringVar(&flagTenant, "tenant", "python_test", "tenant to write under")
	flag.StringVar(&flagHost, "host", config.DefaultBackendHost, "metrics backend host")
	flag.IntVar(&flagPort, "port", config.DefaultBackendPort, "metrics backend port")
	flag.StringVar(&flagMetric, "metric", opts.Metric, "metric name")
	flag.StringVar(&flagType, "type", opts.Type.String(), "metric type [gauge, counter, availability]")
	flag.IntVar(&flagCount, "n", opts.Count, "number of write/read rounds")
	flag.DurationVar(&flagStep, "step", opts.Step, "distance between written points")
	flag.DurationVar(&flagWindow, "window", opts.Window, "read window ending at each point")
	flag.Parse()
}

func main() {
	parseFlags()

	if err := run(); err != nil {
		logrus.WithError(err).Fatal("Benchmark failed")
	}
}

func run() error {
	cfg := config.DefaultClientConfig()
	cfg.Tenant = flagTenant
	cfg.Host = flagHost
	cfg.Port = flagPort
	if err := config.FromEnv(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mType, err := models.ParseMetricType(flagType)
	if err != nil {
		return err
	}

	log, closer, err := logger.New(logger.Options{Level: os.Getenv("LOG_LEVEL")})
	if err != nil {
		return err
	}
	defer closer.Close()
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := bench.DefaultOptions()
	opts.Metric = flagMetric
	opts.Type = mType
	opts.Count = flagCount
	opts.Step = flagStep
	opts.Window = flagWindow

	_, err = bench.Run(ctx, client.New(cfg, log), opts, os.Stdout, log)
	return err
}
