package usecase

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/feature_radar/app/display/internal/domain"
	"github.com/iWorld-y/feature_radar/app/display/internal/repo"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/engine"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/loader"
	dm "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/model"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/present"
)

// Analyzer 执行一次完整的需求分析
type Analyzer interface {
	Run(ctx context.Context, r io.Reader, opts engine.RunOptions) (*engine.Report, error)
}

// AnalysisUseCase 需求分析业务逻辑
type AnalysisUseCase struct {
	analyzer Analyzer
	sessions repo.SessionRepo
	log      *log.Helper
}

// NewAnalysisUseCase 创建需求分析业务逻辑实例
func NewAnalysisUseCase(analyzer Analyzer, sessions repo.SessionRepo, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{analyzer: analyzer, sessions: sessions, log: log.NewHelper(logger)}
}

// NewSessionID 生成新的会话 ID
func (uc *AnalysisUseCase) NewSessionID() string {
	return uc.sessions.NewSessionID()
}

// Preview 预览上传文件的前几行
func (uc *AnalysisUseCase) Preview(ctx context.Context, r io.Reader) (*domain.Preview, error) {
	table, err := loader.Load(r)
	if err != nil {
		return nil, mapError(err)
	}
	return &domain.Preview{
		Header: table.Header,
		Rows:   table.Preview(loader.PreviewRows),
		Total:  len(table.Rows),
	}, nil
}

// Analyze 分析上传文件并保存为会话的最新结果
func (uc *AnalysisUseCase) Analyze(ctx context.Context, sessionID string, r io.Reader, column string) (*domain.Analysis, error) {
	report, err := uc.analyzer.Run(ctx, r, engine.RunOptions{Column: column})
	if err != nil {
		uc.log.WithContext(ctx).Errorf("analyze failed: %v", err)
		return nil, mapError(err)
	}

	a := &domain.Analysis{
		Column:       report.Corpus.Column,
		RequestCount: report.Corpus.Len(),
		Prompt:       report.Prompt,
		Parsed:       report.Parsed,
		Method:       report.Method,
		Rows:         report.Rows,
		Scores:       report.Scores,
		CreatedAt:    report.CreatedAt,
	}
	if !report.Parsed {
		a.Raw = report.Raw
	}
	if a.Rows == nil {
		a.Rows = []present.Row{}
	}
	if a.Scores == nil {
		a.Scores = []present.Score{}
	}

	if err := uc.sessions.SaveAnalysis(ctx, sessionID, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Export 以 CSV 导出会话最近一次的分析结果
func (uc *AnalysisUseCase) Export(ctx context.Context, sessionID string, w io.Writer) error {
	a, err := uc.sessions.GetAnalysis(ctx, sessionID)
	if err != nil {
		return err
	}
	if !a.Parsed {
		return errors.Conflict("ANALYSIS_UNPARSEABLE", "the latest analysis could not be parsed into themes")
	}
	return present.WriteCSV(w, a.Rows)
}

// mapError 将分析错误转换为 HTTP 语义的错误
func mapError(err error) error {
	switch {
	case stderrors.Is(err, dm.ErrInput):
		return errors.BadRequest("INVALID_INPUT", err.Error())
	case stderrors.Is(err, dm.ErrRemoteCall):
		return errors.New(502, "REMOTE_CALL_FAILED", err.Error())
	default:
		return err
	}
}
