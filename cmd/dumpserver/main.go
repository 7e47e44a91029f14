// Command dumpserver serves a directory of spectrometer dumps over HTTP.
// Configuration comes from environment variables prefixed SPECTRUM_ and an
// optional YAML file named by -config.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"spectrumloader/internal/app"
	"spectrumloader/internal/config"
	"spectrumloader/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
