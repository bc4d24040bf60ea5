package service

import (
	"bytes"
	"context"
	"io"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/feature_radar/app/display/internal/conf"
	"github.com/iWorld-y/feature_radar/app/display/internal/domain"
)

const (
	// SessionCookie 会话 Cookie 名称
	SessionCookie = "feature_radar_session"
	// DefaultMaxUpload 默认上传大小上限（10MB）
	DefaultMaxUpload = 10 << 20
	// ExportFilename 导出文件名
	ExportFilename = "feature_themes.csv"
)

const (
	OperationDisplayPreview = "/feature_radar.display.Display/Preview"
	OperationDisplayAnalyze = "/feature_radar.display.Display/Analyze"
	OperationDisplayExport  = "/feature_radar.display.Display/Export"
)

// AnalysisUseCase 分析业务接口，在使用方定义
type AnalysisUseCase interface {
	NewSessionID() string
	Preview(ctx context.Context, r io.Reader) (*domain.Preview, error)
	Analyze(ctx context.Context, sessionID string, r io.Reader, column string) (*domain.Analysis, error)
	Export(ctx context.Context, sessionID string, w io.Writer) error
}

type DisplayService struct {
	uc        AnalysisUseCase
	maxUpload int64
	log       *log.Helper
}

func NewDisplayService(c *conf.Server, uc AnalysisUseCase, logger log.Logger) *DisplayService {
	maxUpload := int64(DefaultMaxUpload)
	if c != nil && c.Http != nil && c.Http.MaxUploadMb > 0 {
		maxUpload = int64(c.Http.MaxUploadMb) << 20
	}
	return &DisplayService{
		uc:        uc,
		maxUpload: maxUpload,
		log:       log.NewHelper(logger),
	}
}

// Preview 预览上传的 CSV
//
// POST /api/preview  multipart/form-data: file
func (s *DisplayService) Preview(ctx http.Context) error {
	data, err := s.readUpload(ctx)
	if err != nil {
		return err
	}
	http.SetOperation(ctx, OperationDisplayPreview)
	h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
		return s.uc.Preview(ctx, bytes.NewReader(req.([]byte)))
	})
	out, err := h(ctx, data)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

// Analyze 分析上传的 CSV
//
// POST /api/analyze  multipart/form-data: file, column(可选)
func (s *DisplayService) Analyze(ctx http.Context) error {
	data, err := s.readUpload(ctx)
	if err != nil {
		return err
	}
	sid := s.session(ctx)
	column := ctx.Request().FormValue("column")

	http.SetOperation(ctx, OperationDisplayAnalyze)
	h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
		return s.uc.Analyze(ctx, sid, bytes.NewReader(req.([]byte)), column)
	})
	out, err := h(ctx, data)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

// Export 下载会话最近一次分析的 CSV
//
// GET /api/export
func (s *DisplayService) Export(ctx http.Context) error {
	c, err := ctx.Request().Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return errors.NotFound("ANALYSIS_NOT_FOUND", "no analysis in this session")
	}

	http.SetOperation(ctx, OperationDisplayExport)
	h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
		var buf bytes.Buffer
		if err := s.uc.Export(ctx, req.(string), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	out, err := h(ctx, c.Value)
	if err != nil {
		return err
	}
	ctx.Response().Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	return ctx.Blob(nethttp.StatusOK, "text/csv; charset=utf-8", out.([]byte))
}

func (s *DisplayService) readUpload(ctx http.Context) ([]byte, error) {
	req := ctx.Request()
	req.Body = nethttp.MaxBytesReader(ctx.Response(), req.Body, s.maxUpload)
	if err := req.ParseMultipartForm(s.maxUpload); err != nil {
		s.log.WithContext(ctx).Warnf("parse upload failed: %v", err)
		return nil, errors.BadRequest("INVALID_UPLOAD", "a CSV file upload is required")
	}

	f, _, err := req.FormFile("file")
	if err != nil {
		return nil, errors.BadRequest("INVALID_UPLOAD", "form field \"file\" is required")
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warnf("close upload failed: %v", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.BadRequest("INVALID_UPLOAD", "failed to read the uploaded file")
	}
	return data, nil
}

// session 读取会话 Cookie，不存在时创建新会话
func (s *DisplayService) session(ctx http.Context) string {
	if c, err := ctx.Request().Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	sid := s.uc.NewSessionID()
	nethttp.SetCookie(ctx.Response(), &nethttp.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: nethttp.SameSiteLaxMode,
	})
	return sid
}
