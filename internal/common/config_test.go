package common

import (
	"errors"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{HTTPAddr: ":8000"},
		LLM:    LLMConfig{APIKey: "sk-test"},
		SMTP: SMTPConfig{
			Host:     "smtp.example.com",
			Port:     587,
			Address:  "alerts@example.com",
			Password: "secret",
		},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing api key", func(c *Config) { c.LLM.APIKey = "" }},
		{"missing email address", func(c *Config) { c.SMTP.Address = "" }},
		{"malformed email address", func(c *Config) { c.SMTP.Address = "not-an-address" }},
		{"missing email password", func(c *Config) { c.SMTP.Password = "" }},
		{"missing http addr", func(c *Config) { c.Server.HTTPAddr = "" }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
