// Package llm 定义调用文本生成模型的通用接口
package llm

import "context"

// Generator 定义通用的文本生成接口
// 一次调用对应一次远程请求，不做重试
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options 模型调用参数
type Options struct {
	BaseURL      string
	APIKey       string
	Model        string
	Temperature  *float32
	SystemPrompt string
}

// GeneratorFunc 允许普通函数作为 Generator 使用
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate implements Generator
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
