// internal/search/config.go
package search

import (
	"time"

	"matchtech-assistant/internal/common/config"
)

type Config struct {
	BaseURL     string
	APIKey      string
	SearchDepth string
	MaxResults  int
	Timeout     time.Duration
	CacheTTL    time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		BaseURL:     cfg.APIs.Tavily.BaseURL,
		APIKey:      cfg.APIs.Tavily.APIKey,
		SearchDepth: cfg.APIs.Tavily.SearchDepth,
		MaxResults:  cfg.APIs.Tavily.MaxResults,
		Timeout:     config.GetDuration(cfg.APIs.Tavily.Timeout),
		CacheTTL:    time.Duration(cfg.APIs.Tavily.CacheTTL) * time.Second,
	}
}
