// Package gemini 基于 Google Gemini API 的文本生成客户端
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/llm"
	dm "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/model"
)

// DefaultModel Gemini 默认模型
const DefaultModel = "gemini-2.5-flash"

// contentGenerator 对应 genai.Models 的 GenerateContent
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client Gemini 客户端
type Client struct {
	models       contentGenerator
	model        string
	temperature  *float32
	systemPrompt string
}

// Ensure Client implements llm.Generator
var _ llm.Generator = (*Client)(nil)

// NewClient 使用 API Key 创建 Gemini 客户端
func NewClient(ctx context.Context, opts llm.Options) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newClient(client.Models, opts), nil
}

func newClient(models contentGenerator, opts llm.Options) *Client {
	m := opts.Model
	if m == "" {
		m = DefaultModel
	}
	return &Client{
		models:       models,
		model:        m,
		temperature:  opts.Temperature,
		systemPrompt: opts.SystemPrompt,
	}
}

// Generate implements llm.Generator
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{Temperature: c.temperature}
	if c.systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(c.systemPrompt, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: gemini API request failed: %v", dm.ErrRemoteCall, err)
	}
	return resp.Text(), nil
}
