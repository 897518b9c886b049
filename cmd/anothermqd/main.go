package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/lc/anothermq/internal/buildinfo"
	"github.com/lc/anothermq/internal/config"
	"github.com/lc/anothermq/internal/log"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "configuration file (default: platform location)")
	pflag.Parse()

	// load config; only a missing APPDATA on Windows is fatal
	var cfg *config.Config
	if *configFile != "" {
		cfg = config.FromFile(*configFile)
	} else {
		var err error
		if cfg, err = config.FromConfigFile(); err != nil {
			log.Fatalf("config error: %v", err)
		}
	}

	closeLog, err := log.Setup(cfg.Log)
	if err != nil {
		log.Fatalf("log setup: %v", err)
	}
	log.Logger = log.Logger.With("node", uuid.NewString())

	log.Info("another-mq starting",
		"version", buildinfo.Version,
		"listen", cfg.Network.Address(),
		"level", cfg.Log.Level.String(),
		"logfile", cfg.Log.File != nil,
		"syslog", cfg.Log.Syslog != nil,
	)

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	<-sig
	log.Info("shutting down…")

	if err := closeLog(); err != nil {
		os.Exit(1)
	}
}
