// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dataqa CLI. dataqa answers
// natural-language questions about datasets in a CKAN open-data catalog,
// either one-shot from the command line or as an HTTP service.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dataqa/internal/catalog"
	"github.com/pdiddy/dataqa/internal/llm"
	"github.com/pdiddy/dataqa/internal/pipeline"
	"github.com/pdiddy/dataqa/internal/secrets"
	"github.com/pdiddy/dataqa/internal/tabular"
	"github.com/pdiddy/dataqa/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the dataqa CLI.
var rootCmd = &cobra.Command{
	Use:   "dataqa",
	Short: "Answer questions about open-data catalog datasets",
	Long: `dataqa answers natural-language questions about datasets published in a
CKAN open-data catalog. It extracts search keywords with a language model,
searches the catalog, has the model pick the best matching dataset, samples
the dataset's CSV resource, and has the model synthesize an answer from the
sample.

Run a single question with "ask", or expose the pipeline as an HTTP service
with "serve".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dataqa.yaml or ~/.config/dataqa/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dataqa")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dataqa"))
		}
	}

	viper.SetEnvPrefix("DATAQA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, the config file, and environment overrides,
// then resolves the chat API key. A missing key stays empty; the chat
// backend reports it on first use.
func loadConfig() types.PipelineConfig {
	cfg := types.DefaultConfig()

	if v := viper.GetString("catalog.base_url"); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := viper.GetString("catalog.user_agent"); v != "" {
		cfg.Catalog.UserAgent = v
	}
	if v := viper.GetDuration("catalog.timeout"); v > 0 {
		cfg.Catalog.Timeout = v
	}
	if v := viper.GetString("sampler.user_agent"); v != "" {
		cfg.Sampler.UserAgent = v
	}
	if v := viper.GetDuration("sampler.timeout"); v > 0 {
		cfg.Sampler.Timeout = v
	}
	if v := viper.GetInt("sampler.max_sample_rows"); v > 0 {
		cfg.Sampler.MaxSampleRows = v
	}
	if v := viper.GetString("ai.model"); v != "" {
		cfg.AI.Model = v
	}
	if v := viper.GetString("ai.base_url"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := viper.GetDuration("ai.timeout"); v > 0 {
		cfg.AI.Timeout = v
	}
	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}

	cfg.AI.APIKey = secrets.APIKey(loadedSecrets)
	return cfg
}

// newPipeline assembles the orchestrator with its real collaborators.
func newPipeline(cfg types.PipelineConfig, log io.Writer) *pipeline.Pipeline {
	steps := &llm.Steps{Backend: llm.NewOpenAIBackend(cfg.AI)}
	return pipeline.New(catalog.New(cfg.Catalog), tabular.New(cfg.Sampler), steps, log)
}

func main() {
	// Pull OPENAI_API_KEY and friends from a .env file when present.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
