package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/feature_radar/app/display/internal/domain"
	"github.com/iWorld-y/feature_radar/app/display/internal/repo"
)

type sessionRepo struct {
	data *Data
	log  *log.Helper
}

func NewSessionRepo(data *Data, logger log.Logger) repo.SessionRepo {
	return &sessionRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *sessionRepo) NewSessionID() string {
	return uuid.NewString()
}

func (r *sessionRepo) SaveAnalysis(ctx context.Context, sessionID string, a *domain.Analysis) error {
	if sessionID == "" {
		return errors.BadRequest("SESSION_MISSING", "session id is required")
	}
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	r.data.evictLocked()
	r.data.sessions[sessionID] = entry{analysis: a, savedAt: r.data.now()}
	return nil
}

func (r *sessionRepo) GetAnalysis(ctx context.Context, sessionID string) (*domain.Analysis, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	r.data.evictLocked()
	e, ok := r.data.sessions[sessionID]
	if !ok {
		return nil, errors.NotFound("ANALYSIS_NOT_FOUND", "no analysis in this session")
	}
	return e.analysis, nil
}
