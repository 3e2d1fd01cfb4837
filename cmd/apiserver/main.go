// API server entry point.  Equivalent to "reclamos serve" with configuration
// taken from a file when present and the environment otherwise.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SolBenven/proyecto-final/internal/config"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/interfaces/cli"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewLogger(cfg.Log)
	defer log.Sync()

	if err := cli.RunServer(context.Background(), cfg, log); err != nil {
		log.Error("server exited with error", logging.Err(err))
		os.Exit(1)
	}
}

// loadConfig prefers the config file and falls back to environment variables
// when it does not exist, which is the containerised deployment mode.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
