package server

import (
	"embed"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/feature_radar/app/display/internal/conf"
	"github.com/iWorld-y/feature_radar/app/display/internal/service"
)

//go:embed assets/*
var assets embed.FS

func NewHTTPServer(c *conf.Server, s *service.DisplayService, logger log.Logger) (*http.Server, error) {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	// 未配置 timeout 时不限制请求时长，模型调用耗时由客户端自身决定
	var timeout time.Duration
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			d, err := time.ParseDuration(c.Http.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid server.http.timeout %q: %w", c.Http.Timeout, err)
			}
			timeout = d
		}
	}
	opts = append(opts, http.Timeout(timeout))

	srv := http.NewServer(opts...)

	r := srv.Route("/api")
	r.POST("/preview", s.Preview)
	r.POST("/analyze", s.Analyze)
	r.GET("/export", s.Export)

	// Serve the upload page
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, err := assets.ReadFile("assets/index.html")
		if err != nil {
			nethttp.Error(w, err.Error(), nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	return srv, nil
}
