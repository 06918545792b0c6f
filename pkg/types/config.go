// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout beyond
	// the transport's defaults.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "dataqa/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CatalogConfig holds settings for the open-data catalog client.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the CKAN action API root, without a trailing slash
	// (e.g. "https://ckan0.cf.opendata.inter.prod-toronto.ca/api/3/action").
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// SamplerConfig holds settings for CSV resource sampling.
type SamplerConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxSampleRows is the number of preview rows sent to the model
	// (default 10).
	MaxSampleRows int `json:"max_sample_rows" yaml:"max_sample_rows"`
}

// AIConfig holds settings for the chat-completion backend.
type AIConfig struct {
	// Model is the chat model identifier (e.g. "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the chat API. Left empty it is
	// resolved from the OPENAI_API_KEY environment variable or the
	// .secrets/ directory at startup.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL is the chat API root (default "https://api.openai.com/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout is the request timeout for model calls. Zero means no
	// timeout beyond the transport's defaults.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ServerConfig holds settings for the HTTP endpoint.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Sampler SamplerConfig `json:"sampler" yaml:"sampler"`
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}

// DefaultConfig returns the configuration used when no config file or
// environment overrides are present.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Catalog: CatalogConfig{
			HTTPConfig: HTTPConfig{UserAgent: "dataqa/0.1"},
			BaseURL:    "https://ckan0.cf.opendata.inter.prod-toronto.ca/api/3/action",
		},
		Sampler: SamplerConfig{
			HTTPConfig:    HTTPConfig{UserAgent: "dataqa/0.1"},
			MaxSampleRows: 10,
		},
		AI: AIConfig{
			Model:   "gpt-4o",
			BaseURL: "https://api.openai.com/v1",
		},
		Server: ServerConfig{Addr: ":8000"},
	}
}
