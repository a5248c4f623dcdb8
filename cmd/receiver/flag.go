package main

import (
	"flag"

	"github.com/chestorix/hawkmon/internal/config"
)

var (
	flagHost     string
	flagPort     int
	flagMaxBody  int64
	flagKey      string
	flagLogFile  string
	flagLogLevel string
)

func parseFlags() {
	flag.StringVar(&flagHost, "host", config.DefaultReceiverHost, "address to listen on")
	flag.IntVar(&flagPort, "port", config.DefaultReceiverPort, "port to listen on")
	flag.Int64Var(&flagMaxBody, "max-body", config.DefaultMaxBodyBytes, "maximum accepted Content-Length in bytes")
	flag.StringVar(&flagKey, "k", "", "secret key to verify HashSHA256 payload signatures")
	flag.StringVar(&flagLogFile, "log-file", "", "rotated log file (stdout only when empty)")
	flag.StringVar(&flagLogLevel, "log-level", "info", "log level")
	flag.Parse()
}
