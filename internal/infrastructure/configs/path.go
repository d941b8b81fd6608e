package configs

import (
	"flag"
	"os"

	"github.com/nexgen/taskbuddy/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file from the --config flag, the
// TASKBUDDY_CONFIG env var, or a few conventional locations. An empty result
// is not an error: Load falls back to defaults plus env overrides.
func DetermineConfigPath() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("TASKBUDDY_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/taskbuddy/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
