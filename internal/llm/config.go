// internal/llm/config.go
package llm

import (
	"time"

	"matchtech-assistant/internal/common/config"
)

type Config struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float64
	TopP        float64
	Timeout     time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Region:      cfg.APIs.Bedrock.Region,
		ModelID:     cfg.APIs.Bedrock.ModelID,
		MaxTokens:   cfg.APIs.Bedrock.MaxTokens,
		Temperature: cfg.APIs.Bedrock.Temperature,
		TopP:        cfg.APIs.Bedrock.TopP,
		Timeout:     config.GetDuration(cfg.APIs.Bedrock.Timeout),
	}
}
