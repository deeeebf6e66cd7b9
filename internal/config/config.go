package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL string
	RedisURL    string

	OpenAIAPIKey string
	OpenAIModel  string

	SerperAPIKey string

	APIKey   string
	HTTPPort int

	LeadListLimit int
}

func Load() *Config {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		SerperAPIKey: os.Getenv("SERPER_API_KEY"),
		APIKey:       strings.TrimSpace(os.Getenv("API_KEY")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, leads and knowledge base disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, chat-backed answers will be unavailable")
	}
	if cfg.SerperAPIKey == "" {
		log.Println("Warning: SERPER_API_KEY not set, news queries will return empty results")
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.LeadListLimit = 100
	if v := strings.TrimSpace(os.Getenv("LEAD_LIST_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LeadListLimit = n
		}
	}

	return cfg
}
