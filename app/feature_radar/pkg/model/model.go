package model

// 频率 / 商业影响等级
const (
	Low    = "Low"
	Medium = "Medium"
	High   = "High"
)

// 情感倾向
const (
	Positive = "Positive"
	Neutral  = "Neutral"
	Negative = "Negative"
)

// Corpus 从单列中提取的需求文本，保持原始顺序
type Corpus struct {
	Column   string
	Requests []string
}

// Len 返回需求条数
func (c Corpus) Len() int {
	return len(c.Requests)
}

// Theme 模型返回的单个主题
// 所有字段都可能缺失，缺失时为零值
type Theme struct {
	Theme          string   `json:"theme"`
	Requests       []string `json:"requests"`
	Frequency      string   `json:"frequency"`
	Sentiment      string   `json:"sentiment"`
	BusinessImpact string   `json:"business_impact"`
}

// Themes 一次分析的结果，顺序与模型返回一致
type Themes []Theme
