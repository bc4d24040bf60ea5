package factory

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/config"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/llm"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/llm/gemini"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/llm/openai"
)

// NewGenerator 根据配置创建模型客户端
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (llm.Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is missing")
	}

	opts := llm.Options{
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		SystemPrompt: cfg.SystemPrompt,
	}

	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case "", "openai":
		return openai.NewClient(ctx, opts)

	case "gemini":
		return gemini.NewClient(ctx, opts)

	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
