package repo

import (
	"context"

	"github.com/iWorld-y/feature_radar/app/display/internal/domain"
)

// SessionRepo 会话状态仓库接口
type SessionRepo interface {
	// NewSessionID 生成新的会话 ID
	NewSessionID() string
	// SaveAnalysis 保存会话最近一次的分析结果，覆盖旧结果
	SaveAnalysis(ctx context.Context, sessionID string, a *domain.Analysis) error
	// GetAnalysis 获取会话最近一次的分析结果
	GetAnalysis(ctx context.Context, sessionID string) (*domain.Analysis, error)
}
