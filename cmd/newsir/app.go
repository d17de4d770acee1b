package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"newsir/internal/config"
	"newsir/internal/engine"
	"newsir/internal/logging"
	"newsir/internal/service"
	"newsir/internal/summarizer"
)

type app struct {
	cfg    *config.AppConfig
	logger *zap.Logger
	svc    *service.NewsService
}

// newApp loads config, applies flag overrides and assembles the pipeline.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	eng := engine.New(engine.Config{
		TextField:     cfg.Engine.TextField,
		MaxVocabulary: cfg.Engine.MaxVocabulary,
		TopK:          cfg.Search.TopK,
	}, logger)
	sum := summarizer.NewFrequencySummarizer(summarizer.Config{
		MaxSentences:      cfg.Summarizer.MaxSentences,
		MinSentenceLength: cfg.Summarizer.MinSentenceLength,
	})
	svc := service.NewNewsService(eng, sum, cfg.Summarizer.MaxSentences, logger)
	return &app{cfg: cfg, logger: logger, svc: svc}, nil
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

// applyFlags copies explicitly set flags over config file values.
func applyFlags(cmd *cobra.Command, cfg *config.AppConfig) error {
	flags := cmd.Flags()
	if flags.Changed("text-column") {
		cfg.Engine.TextField = textColumn
	}
	if flags.Changed("top-k") {
		if topK < 1 {
			return fmt.Errorf("--top-k must be >= 1, got %d", topK)
		}
		cfg.Search.TopK = topK
	}
	if flags.Changed("summary-sentences") {
		if summarySentences < 1 {
			return fmt.Errorf("--summary-sentences must be >= 1, got %d", summarySentences)
		}
		cfg.Summarizer.MaxSentences = summarySentences
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	return nil
}
