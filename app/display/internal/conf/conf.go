package conf

type Bootstrap struct {
	Server   *Server   `json:"server"`
	Analyzer *Analyzer `json:"analyzer"`
	Session  *Session  `json:"session"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr string `json:"addr"`
	// Timeout 请求超时，为空时不限制
	Timeout string `json:"timeout"`
	// MaxUploadMb 上传文件大小上限
	MaxUploadMb int32 `json:"max_upload_mb"`
}

type Analyzer struct {
	Llm   *LLM   `json:"llm"`
	Input *Input `json:"input"`
	Log   *Log   `json:"log"`
}

type LLM struct {
	Provider     string   `json:"provider"`
	BaseUrl      string   `json:"base_url"`
	ApiKey       string   `json:"api_key"`
	Model        string   `json:"model"`
	Temperature  *float32 `json:"temperature"`
	SystemPrompt string   `json:"system_prompt"`
}

type Input struct {
	Column   string `json:"column"`
	MaxRows  int32  `json:"max_rows"`
	MaxChars int32  `json:"max_chars"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Session struct {
	// Ttl 会话结果保留时长，例如 "1h"
	Ttl string `json:"ttl"`
}
