package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the OpenAI client.
type Config struct {
	APIKey        string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL       string        // default https://api.openai.com/v1
	Model         string        // e.g., "gpt-5-mini"
	Timeout       time.Duration // http client timeout for one-shot calls
	SearchTimeout time.Duration // http client timeout for streamed searches
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	streamHTTP *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-5-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		streamHTTP: &http.Client{Timeout: cfg.SearchTimeout},
		log:        logger,
	}
}
