package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/config"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/interpret"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/llm"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/loader"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/logger"
	dm "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/model"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/present"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/prompt"
)

// Engine 核心处理引擎：Loader → Prompt → LLM → Interpreter → Presenter
type Engine struct {
	column    string
	limits    prompt.Limits
	generator llm.Generator
}

// NewEngine 创建引擎实例
func NewEngine(cfg *config.Config, generator llm.Generator) *Engine {
	return &Engine{
		column: cfg.Input.Column,
		limits: prompt.Limits{
			MaxRows:  cfg.Input.MaxRows,
			MaxChars: cfg.Input.MaxChars,
		},
		generator: generator,
	}
}

// Report 一次分析的完整结果
// Parsed 为 false 时 Raw 保存模型原始回复，Rows/Scores 为空
type Report struct {
	Corpus    dm.Corpus
	Prompt    string
	Raw       string
	Parsed    bool
	Method    string
	Themes    dm.Themes
	Rows      []present.Row
	Scores    []present.Score
	CreatedAt time.Time
}

// RunOptions 运行选项
type RunOptions struct {
	// Column 覆盖配置中的需求列名
	Column string
}

// Run 读取 CSV 并执行一次分析
func (e *Engine) Run(ctx context.Context, r io.Reader, opts RunOptions) (*Report, error) {
	table, err := loader.Load(r)
	if err != nil {
		return nil, err
	}

	column := e.column
	if opts.Column != "" {
		column = opts.Column
	}
	corpus, err := table.Corpus(column)
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("已读取需求列 [%s]: %d 条", corpus.Column, corpus.Len())

	return e.Analyze(ctx, corpus)
}

// Analyze 对已提取的需求执行分析，模型回复无法解析时不返回错误
func (e *Engine) Analyze(ctx context.Context, corpus dm.Corpus) (*Report, error) {
	if err := e.limits.Check(corpus); err != nil {
		return nil, err
	}

	p := prompt.Build(corpus.Requests)
	logger.Log.Debugf("Prompt 长度: %d", len(p))

	start := time.Now()
	raw, err := e.generator.Generate(ctx, p)
	if err != nil {
		logger.Log.Errorf("模型调用失败: %v", err)
		return nil, fmt.Errorf("generate: %w", err)
	}
	logger.Log.Infof("模型调用完成，耗时 %s，回复长度 %d", time.Since(start).Round(time.Millisecond), len(raw))

	report := &Report{
		Corpus:    corpus,
		Prompt:    p,
		Raw:       raw,
		CreatedAt: time.Now(),
	}

	res := interpret.Interpret(raw)
	if !res.OK() {
		logger.Log.Warnf("模型回复无法解析为主题列表: %v", res.Err())
		return report, nil
	}

	report.Parsed = true
	report.Method = res.Method
	report.Themes = res.Themes
	report.Rows = present.Project(res.Themes)
	report.Scores = present.Scores(res.Themes)
	logger.Log.Infof("解析到 %d 个主题 (method: %s)", len(res.Themes), res.Method)
	return report, nil
}

// WriteCSV 导出主题表格
func (r *Report) WriteCSV(w io.Writer) error {
	return present.WriteCSV(w, r.Rows)
}

// WriteHTML 渲染 HTML 报告
func (r *Report) WriteHTML(w io.Writer, source string) error {
	return present.WriteHTML(w, present.Page{
		Date:         r.CreatedAt.Format("2006-01-02 15:04:05"),
		Source:       source,
		Column:       r.Corpus.Column,
		RequestCount: r.Corpus.Len(),
		Prompt:       r.Prompt,
		Parsed:       r.Parsed,
		Raw:          r.Raw,
		Rows:         r.Rows,
		Scores:       r.Scores,
	})
}
