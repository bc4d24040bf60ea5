// Package present 将解析后的主题投影为表格、评分序列和导出文件
package present

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	dm "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/model"
)

const (
	// MaxExamples 每个主题展示的示例需求数量
	MaxExamples = 5
	// ExampleSeparator 示例需求之间的分隔符
	ExampleSeparator = " • "
)

// Header 导出 CSV 的表头
var Header = []string{"Theme", "Frequency", "Impact", "Sentiment", "Examples"}

// Row 表格中的一行
type Row struct {
	Theme     string `json:"theme"`
	Frequency string `json:"frequency"`
	Impact    string `json:"impact"`
	Sentiment string `json:"sentiment"`
	Examples  string `json:"examples"`
}

// Score 单个主题的频率评分
type Score struct {
	Theme string `json:"theme"`
	Score int    `json:"score"`
}

// Project 将主题列表展开为表格行，顺序保持不变
func Project(themes dm.Themes) []Row {
	rows := make([]Row, 0, len(themes))
	for _, th := range themes {
		examples := th.Requests
		if len(examples) > MaxExamples {
			examples = examples[:MaxExamples]
		}
		rows = append(rows, Row{
			Theme:     th.Theme,
			Frequency: th.Frequency,
			Impact:    th.BusinessImpact,
			Sentiment: th.Sentiment,
			Examples:  strings.Join(examples, ExampleSeparator),
		})
	}
	return rows
}

// FrequencyScore Low→1, Medium→2, High→3，其余为 0
func FrequencyScore(level string) int {
	switch level {
	case dm.Low:
		return 1
	case dm.Medium:
		return 2
	case dm.High:
		return 3
	default:
		return 0
	}
}

// Scores 以主题名为索引的频率评分序列
func Scores(themes dm.Themes) []Score {
	scores := make([]Score, 0, len(themes))
	for _, th := range themes {
		scores = append(scores, Score{Theme: th.Theme, Score: FrequencyScore(th.Frequency)})
	}
	return scores
}

// WriteCSV 导出带表头的 UTF-8 CSV
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Theme, r.Frequency, r.Impact, r.Sentiment, r.Examples}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
