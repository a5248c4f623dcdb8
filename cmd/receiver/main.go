// Приёмник уведомлений об алертах: печатает тело каждого POST-запроса и отвечает 200.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/config"
	"github.com/chestorix/hawkmon/internal/logger"
	"github.com/chestorix/hawkmon/internal/receiver"
	"github.com/chestorix/hawkmon/internal/utils"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	utils.PrintBuildInfo(os.Stderr, buildVersion, buildDate, buildCommit)
	parseFlags()

	if err := run(); err != nil {
		logrus.WithError(err).Fatal("Receiver failed")
	}
}

func run() error {
	cfg := config.ReceiverConfig{
		Host:         flagHost,
		Port:         flagPort,
		MaxBodyBytes: flagMaxBody,
		Key:          flagKey,
		LogFile:      flagLogFile,
		LogLevel:     flagLogLevel,
	}
	if err := config.FromEnv(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closer, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	sink := receiver.MultiSink{
		receiver.WriterSink{W: os.Stdout},
		receiver.LogSink{Logger: log},
	}
	server := receiver.NewServer(cfg, sink, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		log.Info("Shutting down receiver...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Failed to shut down receiver")
		}
	}()

	log.Info("Starting receiver...")
	return server.Start()
}
