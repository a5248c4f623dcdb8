// Package logger настраивает logrus для бинарников: JSON в stdout и,
// при необходимости, копия в файл с ротацией.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options задаёт уровень и файл журнала.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New создаёт logger. Возвращённый io.Closer закрывает файл журнала (если он есть).
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	if opts.Level != "" {
		level, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level: %w", err)
		}
		logger.SetLevel(level)
	}

	if opts.File == "" {
		logger.SetOutput(os.Stdout)
		return logger, io.NopCloser(nil), nil
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    orDefault(opts.MaxSizeMB, 100),
		MaxBackups: orDefault(opts.MaxBackups, 5),
		MaxAge:     orDefault(opts.MaxAgeDays, 30),
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return logger, rotator, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
