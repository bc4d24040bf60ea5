package openai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/llm"
	dm "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/model"
)

// Client 基于 eino 的 OpenAI 兼容接口客户端
type Client struct {
	chatModel    model.BaseChatModel
	systemPrompt string
}

// Ensure Client implements llm.Generator
var _ llm.Generator = (*Client)(nil)

// NewClient 创建 OpenAI 兼容客户端，BaseURL 为空时使用官方地址
func NewClient(ctx context.Context, opts llm.Options) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     opts.BaseURL,
		APIKey:      opts.APIKey,
		Model:       opts.Model,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewClientWithModel(chatModel, opts.SystemPrompt), nil
}

// NewClientWithModel 使用已有的 ChatModel 创建客户端
func NewClientWithModel(cm model.BaseChatModel, systemPrompt string) *Client {
	return &Client{chatModel: cm, systemPrompt: systemPrompt}
}

// Generate implements llm.Generator
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: c.systemPrompt},
		{Role: schema.User, Content: prompt},
	}

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: openai generate: %v", dm.ErrRemoteCall, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}
