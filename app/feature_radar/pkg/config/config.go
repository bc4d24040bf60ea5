package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// 默认配置
const (
	DefaultProvider     = "openai"
	DefaultModel        = "gpt-4o-mini"
	DefaultTemperature  = 0.3
	DefaultSystemPrompt = "You are a helpful assistant that outputs concise valid JSON only."
	DefaultColumn       = "Requests"
	DefaultOutputDir    = "output"
)

// Config 项目配置结构体
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Input  InputConfig  `yaml:"input"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

// LLMConfig LLM 相关配置
// API Key 可以通过环境变量注入，避免写入配置文件
type LLMConfig struct {
	Provider     string   `yaml:"provider" env:"FEATURE_RADAR_LLM_PROVIDER"`
	BaseURL      string   `yaml:"base_url" env:"FEATURE_RADAR_LLM_BASE_URL"`
	APIKey       string   `yaml:"api_key" env:"FEATURE_RADAR_LLM_API_KEY"`
	Model        string   `yaml:"model" env:"FEATURE_RADAR_LLM_MODEL"`
	Temperature  *float32 `yaml:"temperature"`
	SystemPrompt string   `yaml:"system_prompt"`
}

// InputConfig 输入相关配置
type InputConfig struct {
	// Column 需求所在的列名，不存在时使用第一列
	Column string `yaml:"column" env:"FEATURE_RADAR_INPUT_COLUMN"`
	// MaxRows / MaxChars 为 0 表示不限制
	MaxRows  int `yaml:"max_rows"`
	MaxChars int `yaml:"max_chars"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level" env:"FEATURE_RADAR_LOG_LEVEL"`
	File  string `yaml:"file"`
}

// OutputConfig 输出相关配置
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoadConfig 从指定路径加载配置
// 加载顺序：YAML 文件 -> 环境变量覆盖 -> 默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults 填充未配置的字段
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = DefaultProvider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.Temperature == nil {
		t := float32(DefaultTemperature)
		c.LLM.Temperature = &t
	}
	if c.LLM.SystemPrompt == "" {
		c.LLM.SystemPrompt = DefaultSystemPrompt
	}
	if c.Input.Column == "" {
		c.Input.Column = DefaultColumn
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm api_key is not set")
	}
	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	if c.LLM.Temperature != nil && (*c.LLM.Temperature < 0 || *c.LLM.Temperature > 2) {
		return fmt.Errorf("llm temperature out of range: %v", *c.LLM.Temperature)
	}
	if c.Input.MaxRows < 0 || c.Input.MaxChars < 0 {
		return fmt.Errorf("input limits must not be negative")
	}
	return nil
}
