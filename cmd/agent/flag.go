package main

import (
	"flag"

	"github.com/chestorix/hawkmon/internal/config"
)

var (
	flagTenant         string
	flagHost           string
	flagPort           int
	flagReportInterval int
	flagPollInterval   int
	flagRateLimit      int
	flagLogLevel       string
)

func parseFlags() {
	flag.StringVar(&flagTenant, "tenant", config.DefaultTenant, "tenant to report metrics under")
	flag.StringVar(&flagHost, "host", config.DefaultBackendHost, "metrics backend host")
	flag.IntVar(&flagPort, "port", config.DefaultBackendPort, "metrics backend port")
	flag.IntVar(&flagReportInterval, "r", 10, "interval to report metrics (seconds)")
	flag.IntVar(&flagPollInterval, "p", 2, "interval to poll metrics (seconds)")
	flag.IntVar(&flagRateLimit, "l", 1, "rate limit for outgoing requests")
	flag.StringVar(&flagLogLevel, "log-level", "info", "log level")
	flag.Parse()
}
