// Агент периодически собирает метрики процесса и хоста и отправляет их в бэкенд.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/agent"
	"github.com/chestorix/hawkmon/internal/client"
	"github.com/chestorix/hawkmon/internal/collector"
	"github.com/chestorix/hawkmon/internal/config"
	"github.com/chestorix/hawkmon/internal/logger"
)

func main() {
	parseFlags()

	if err := run(); err != nil {
		logrus.WithError(err).Fatal("Agent failed")
	}
}

func run() error {
	cfg := config.DefaultAgentConfig()
	cfg.Client.Tenant = flagTenant
	cfg.Client.Host = flagHost
	cfg.Client.Port = flagPort
	cfg.PollInterval = time.Duration(flagPollInterval) * time.Second
	cfg.ReportInterval = time.Duration(flagReportInterval) * time.Second
	cfg.RateLimit = flagRateLimit
	if err := config.FromEnv(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closer, err := logger.New(logger.Options{Level: flagLogLevel})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	c := client.New(cfg.Client, log)
	status, err := c.QueryStatus(ctx)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"backend": cfg.Client.BaseURL(),
		"tenant":  c.Tenant(),
		"version": status.Version(),
	}).Info("Agent started")

	a := agent.NewAgent(cfg, c, collector.NewHostCollector(time.Second), log)
	a.Run(ctx)

	log.Info("Agent stopped")
	return nil
}
