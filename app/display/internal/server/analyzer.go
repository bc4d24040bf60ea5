package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/feature_radar/app/display/internal/conf"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/config"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/engine"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/llm/factory"
	frLogger "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/logger"
)

// ToConfig 将 internal/conf.Analyzer 转换为 pkg/config.Config
func ToConfig(c *conf.Analyzer) *config.Config {
	cfg := &config.Config{}
	if c != nil {
		if c.Llm != nil {
			cfg.LLM = config.LLMConfig{
				Provider:     c.Llm.Provider,
				BaseURL:      c.Llm.BaseUrl,
				APIKey:       c.Llm.ApiKey,
				Model:        c.Llm.Model,
				Temperature:  c.Llm.Temperature,
				SystemPrompt: c.Llm.SystemPrompt,
			}
		}
		if c.Input != nil {
			cfg.Input = config.InputConfig{
				Column:   c.Input.Column,
				MaxRows:  int(c.Input.MaxRows),
				MaxChars: int(c.Input.MaxChars),
			}
		}
		if c.Log != nil {
			cfg.Log = config.LogConfig{
				Level: c.Log.Level,
				File:  c.Log.File,
			}
		}
	}
	cfg.ApplyDefaults()
	return cfg
}

// NewAnalyzerEngine 初始化 feature_radar 引擎
func NewAnalyzerEngine(c *conf.Analyzer, logger log.Logger) (*engine.Engine, func(), error) {
	cfg := ToConfig(c)
	if err := cfg.Validate(); err != nil {
		log.NewHelper(logger).Errorf("Invalid analyzer config: %v", err)
		return nil, nil, err
	}

	if err := frLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init feature_radar logger: %v", err)
		_ = frLogger.InitLogger("info", "") // 降级处理
	}

	generator, err := factory.NewGenerator(context.Background(), cfg.LLM)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init llm client: %v", err)
		return nil, nil, err
	}

	eng := engine.NewEngine(cfg, generator)
	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up feature_radar engine")
	}
	return eng, cleanup, nil
}
