package domain

import (
	"time"

	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/present"
)

// Preview 上传数据预览
type Preview struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Total  int        `json:"total"`
}

// Analysis 一次分析的展示结果，只保存在会话内存中
type Analysis struct {
	Column       string          `json:"column"`
	RequestCount int             `json:"request_count"`
	Prompt       string          `json:"prompt"`
	Parsed       bool            `json:"parsed"`
	Method       string          `json:"method,omitempty"`
	Raw          string          `json:"raw,omitempty"`
	Rows         []present.Row   `json:"rows"`
	Scores       []present.Score `json:"scores"`
	CreatedAt    time.Time       `json:"created_at"`
}
