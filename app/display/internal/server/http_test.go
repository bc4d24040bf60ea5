package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/feature_radar/app/display/internal/conf"
	"github.com/iWorld-y/feature_radar/app/display/internal/data"
	"github.com/iWorld-y/feature_radar/app/display/internal/service"
	"github.com/iWorld-y/feature_radar/app/display/internal/usecase"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/engine"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/llm"
)

const scenarioCSV = "Requests\nAdd CSV export\nNeed Klaviyo integration\nPlease export to PDF\n"

const scenarioReply = `[{"theme":"Exporting Data","requests":["Add CSV export","Please export to PDF"],"frequency":"High","sentiment":"Neutral","business_impact":"High"},{"theme":"Integrations","requests":["Need Klaviyo integration"],"frequency":"Low","sentiment":"Positive","business_impact":"Medium"}]`

func newTestServer(t *testing.T, gen llm.Generator) nethttp.Handler {
	t.Helper()
	return newTestServerWithConf(t, &conf.Server{Http: &conf.HTTP{Timeout: "5s", MaxUploadMb: 1}}, gen)
}

func newTestServerWithConf(t *testing.T, c *conf.Server, gen llm.Generator) nethttp.Handler {
	t.Helper()
	logger := log.DefaultLogger

	d, cleanup, err := data.NewData(&conf.Session{Ttl: "1h"}, logger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	eng := engine.NewEngine(ToConfig(&conf.Analyzer{}), gen)
	uc := usecase.NewAnalysisUseCase(eng, data.NewSessionRepo(d, logger), logger)
	svc := service.NewDisplayService(c, uc, logger)
	srv, err := NewHTTPServer(c, svc, logger)
	require.NoError(t, err)
	return srv
}

// createMultipartRequest 构造带文件的上传请求
func createMultipartRequest(t *testing.T, url, content string) *nethttp.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "requests.csv")
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(nethttp.MethodPost, url, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func staticReply(reply string) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return reply, nil
	})
}

func TestHTTPServer_AnalyzeThenExport(t *testing.T) {
	srv := newTestServer(t, staticReply(scenarioReply))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, createMultipartRequest(t, "/api/analyze", scenarioCSV))
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Parsed bool `json:"parsed"`
		Rows   []struct {
			Theme string `json:"theme"`
		} `json:"rows"`
		Scores []struct {
			Score int `json:"score"`
		} `json:"scores"`
		RequestCount int `json:"request_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Parsed)
	assert.Equal(t, 3, got.RequestCount)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, 3, got.Scores[0].Score)
	assert.Equal(t, 1, got.Scores[1].Score)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, service.SessionCookie, cookies[0].Name)

	exportReq := httptest.NewRequest(nethttp.MethodGet, "/api/export", nil)
	exportReq.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, exportReq)

	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), service.ExportFilename)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Theme,Frequency,Impact,Sentiment,Examples\n"))
	assert.Contains(t, rec.Body.String(), "Exporting Data")
	assert.Contains(t, rec.Body.String(), "Integrations")
}

func TestHTTPServer_Unparseable(t *testing.T) {
	srv := newTestServer(t, staticReply("sorry"))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, createMultipartRequest(t, "/api/analyze", scenarioCSV))
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, false, got["parsed"])
	assert.Equal(t, "sorry", got["raw"])
}

func TestHTTPServer_Errors(t *testing.T) {
	srv := newTestServer(t, llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Fatal("model must not be called")
		return "", nil
	}))

	// 所选列没有有效值
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, createMultipartRequest(t, "/api/analyze", "Requests\n \n"))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	// 缺少文件
	req := httptest.NewRequest(nethttp.MethodPost, "/api/analyze", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	// 没有会话时导出
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/export", nil))
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestHTTPServer_RemoteError(t *testing.T) {
	srv := newTestServer(t, llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", io.ErrUnexpectedEOF
	}))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, createMultipartRequest(t, "/api/analyze", scenarioCSV))
	// 未包装 ErrRemoteCall 的错误按内部错误处理
	assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)
}

func TestHTTPServer_PreviewAndIndex(t *testing.T) {
	srv := newTestServer(t, staticReply("[]"))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, createMultipartRequest(t, "/api/preview", "Requests,Votes\na,1\nb,2\n"))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var p struct {
		Header []string   `json:"header"`
		Rows   [][]string `json:"rows"`
		Total  int        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, []string{"Requests", "Votes"}, p.Header)
	assert.Equal(t, 2, p.Total)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/", nil))
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analyze with AI")
}

func TestHTTPServer_PanicRecovered(t *testing.T) {
	srv := newTestServer(t, llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		srv.ServeHTTP(rec, createMultipartRequest(t, "/api/analyze", scenarioCSV))
	})
	assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)
}

func TestHTTPServer_NoDefaultTimeout(t *testing.T) {
	var hasDeadline bool
	srv := newTestServerWithConf(t, &conf.Server{Http: &conf.HTTP{}}, llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		_, hasDeadline = ctx.Deadline()
		return scenarioReply, nil
	}))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, createMultipartRequest(t, "/api/analyze", scenarioCSV))
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, hasDeadline)
}

func TestHTTPServer_ConfiguredTimeout(t *testing.T) {
	var hasDeadline bool
	srv := newTestServer(t, llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		_, hasDeadline = ctx.Deadline()
		return scenarioReply, nil
	}))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, createMultipartRequest(t, "/api/analyze", scenarioCSV))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.True(t, hasDeadline)
}

func TestNewHTTPServer_InvalidTimeout(t *testing.T) {
	c := &conf.Server{Http: &conf.HTTP{Timeout: "soon"}}
	svc := service.NewDisplayService(c, nil, log.DefaultLogger)
	_, err := NewHTTPServer(c, svc, log.DefaultLogger)
	assert.ErrorContains(t, err, "server.http.timeout")
}

func TestHTTPServer_UploadLimit(t *testing.T) {
	srv := newTestServer(t, staticReply(scenarioReply))

	big := "Requests\n" + strings.Repeat("x", 2<<20) + "\n"
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, createMultipartRequest(t, "/api/preview", big))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestToConfig(t *testing.T) {
	temp := float32(0.1)
	cfg := ToConfig(&conf.Analyzer{
		Llm:   &conf.LLM{Provider: "gemini", ApiKey: "k", Temperature: &temp},
		Input: &conf.Input{Column: "Feedback", MaxRows: 10},
	})
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "Feedback", cfg.Input.Column)
	assert.Equal(t, 10, cfg.Input.MaxRows)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())

	_, _, err := NewAnalyzerEngine(&conf.Analyzer{}, log.DefaultLogger)
	assert.ErrorContains(t, err, "api_key")
}
