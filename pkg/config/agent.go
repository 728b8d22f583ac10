package config

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// AgentConfig is the device-agent connection configuration. It comes
// from the environment (optionally seeded by a .env file), never from
// config.yaml, so CI can point at a different agent without touching
// the workspace.
type AgentConfig struct {
	URL        string `env:"RECORDER_INSIGHT_AGENT_URL" env-default:"http://127.0.0.1:7420"`
	TimeoutSec int    `env:"RECORDER_INSIGHT_AGENT_TIMEOUT" env-default:"30"`
}

// LoadAgentConfig reads the agent configuration from the environment.
// A .env file in dir is loaded first when present; existing
// environment variables win over .env entries.
func LoadAgentConfig(dir string) (*AgentConfig, error) {
	if dir != "" {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// godotenv never overwrites variables already set.
			if err := godotenv.Load(envPath); err != nil {
				return nil, err
			}
		}
	}

	var cfg AgentConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
