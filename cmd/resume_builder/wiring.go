package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/emphasis"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/sirupsen/logrus"
)

// newRenderer uses the emphasis file from config, or the built-in keyword table.
func newRenderer(cfg *config.Config) (*rendering.Renderer, error) {
	table := emphasis.Default()
	if cfg.Emphasis.File != "" {
		loaded, err := emphasis.Load(cfg.Emphasis.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load emphasis keywords: %w", err)
		}
		table = loaded
	}
	return rendering.NewRenderer(table), nil
}

// llmConfig merges the llm section over the provider defaults.
func llmConfig(cfg *config.Config) (*llm.Config, error) {
	llmCfg, err := llm.ConfigFor(cfg.LLM.Provider)
	if err != nil {
		return nil, err
	}
	llmCfg = llmCfg.WithModels(cfg.LLM.Models...)
	if cfg.LLM.MaxTokens > 0 {
		llmCfg.MaxTokens = cfg.LLM.MaxTokens
	}
	llmCfg.Temperature = cfg.LLM.Temperature
	return llmCfg, nil
}

// newOracle builds the model client and the scorer on top of it. The caller closes the client.
func newOracle(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*scoring.Oracle, llm.Client, error) {
	llmCfg, err := llmConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return scoring.NewOracle(client, llmCfg.Models, log), client, nil
}
