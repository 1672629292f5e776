package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Secrets holds the credentials consumed by the pipeline. They come from the
// process environment (optionally seeded from a .env file), never from YAML.
type Secrets struct {
	YouTubeAPIKey string
	GroqAPIKey    string
	GitHubToken   string
	GeminiAPIKeys []string
}

// Load reads the YAML config file, applies defaults and pulls secrets
// from the environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	cfg.Secrets = SecretsFromEnv()
	return &cfg, nil
}

// SecretsFromEnv loads credentials from the environment. A .env file in the
// working directory is applied first if present.
func SecretsFromEnv() Secrets {
	// Missing .env is the normal case in CI, only local runs carry one.
	_ = godotenv.Load()

	var keys []string
	for _, k := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}

	return Secrets{
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		GeminiAPIKeys: keys,
	}
}
