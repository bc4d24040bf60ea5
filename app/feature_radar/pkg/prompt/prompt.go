// Package prompt 根据需求文本构造主题聚类 Prompt
package prompt

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	dm "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/model"
)

// Header 固定的角色与任务说明，每个 Prompt 中只出现一次
const Header = "You are an AI product analyst. Categorize the following customer feature requests into themes and assess their business impact."

const contract = `For each theme, return an object with exactly these fields:
- "theme": a short label for the theme
- "requests": up to 6 representative requests copied verbatim from the list below
- "frequency": how common the theme is, one of "Low", "Medium", "High"
- "sentiment": overall customer sentiment, one of "Positive", "Neutral", "Negative"
- "business_impact": commercial significance of addressing it, one of "Low", "Medium", "High"

Output ONLY a raw JSON array of these objects. Do not add any commentary, explanation or markdown code fences. Example:
[
  {
    "theme": "Exporting Data",
    "requests": ["Can I export results to CSV?", "Need a PDF export option."],
    "frequency": "High",
    "sentiment": "Neutral",
    "business_impact": "High"
  }
]`

// ErrCorpusTooLarge 需求文本超过配置的上限
var ErrCorpusTooLarge = errors.New("corpus exceeds configured limit")

// Build 构造 Prompt，需求按原始顺序逐行拼接，不做转义
func Build(requests []string) string {
	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString("\n\n")
	sb.WriteString(contract)
	sb.WriteString("\n\nRequests:\n")
	sb.WriteString(strings.Join(requests, "\n"))
	sb.WriteString("\n")
	return sb.String()
}

// Limits 输入规模上限，0 表示不限制
type Limits struct {
	MaxRows  int
	MaxChars int
}

// Check 超过上限时返回错误，不做截断
func (l Limits) Check(corpus dm.Corpus) error {
	if l.MaxRows > 0 && corpus.Len() > l.MaxRows {
		return fmt.Errorf("%w: %w: %d rows > max_rows %d", dm.ErrInput, ErrCorpusTooLarge, corpus.Len(), l.MaxRows)
	}
	if l.MaxChars > 0 {
		n := 0
		for _, r := range corpus.Requests {
			n += utf8.RuneCountInString(r)
		}
		// 换行分隔符
		if corpus.Len() > 1 {
			n += corpus.Len() - 1
		}
		if n > l.MaxChars {
			return fmt.Errorf("%w: %w: %d chars > max_chars %d", dm.ErrInput, ErrCorpusTooLarge, n, l.MaxChars)
		}
	}
	return nil
}
