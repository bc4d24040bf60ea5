// Package interpret 从模型的自由文本回复中尽力解析主题列表。
//
// 解析按顺序尝试一组 Parser：先把整段回复当作 JSON 数组解析，失败后再从
// ```json ... ``` 代码块中提取数组。全部失败时返回 Unparseable 结果并保留
// 原始文本，由调用方展示诊断信息，而不是报错。
package interpret

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	dm "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/model"
)

// 解析方式
const (
	MethodJSON       = "json"
	MethodFencedJSON = "fenced_json"
)

// fencedArray 匹配可选 json 标记的代码块中的数组，非贪婪匹配到第一个 ]```
var fencedArray = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")

// Parser 单个解析尝试
type Parser struct {
	Method string
	Parse  func(raw string) (dm.Themes, error)
}

// DefaultChain 默认解析顺序
var DefaultChain = []Parser{
	{Method: MethodJSON, Parse: parseRaw},
	{Method: MethodFencedJSON, Parse: parseFenced},
}

// Result 解析结果：成功时 Themes 有效，否则 Raw 为原始回复
type Result struct {
	Parsed bool
	Method string
	Themes dm.Themes
	Raw    string
	// Errs 每个失败的 Parser 对应的错误
	Errs []error
}

// OK 是否解析成功
func (r Result) OK() bool {
	return r.Parsed
}

// Err 汇总所有失败原因，解析成功时为 nil
func (r Result) Err() error {
	if r.Parsed {
		return nil
	}
	return errors.Join(r.Errs...)
}

// Interpret 使用默认顺序解析
func Interpret(raw string) Result {
	return Chain(DefaultChain).Interpret(raw)
}

// Chain 按顺序尝试的一组 Parser
type Chain []Parser

// Interpret 返回第一个成功的解析结果
func (c Chain) Interpret(raw string) Result {
	res := Result{Raw: raw}
	for _, p := range c {
		themes, err := p.Parse(raw)
		if err != nil {
			res.Errs = append(res.Errs, fmt.Errorf("%s: %w", p.Method, err))
			continue
		}
		res.Parsed = true
		res.Method = p.Method
		res.Themes = themes
		return res
	}
	return res
}

func parseRaw(raw string) (dm.Themes, error) {
	return decodeThemes([]byte(strings.TrimSpace(raw)))
}

func parseFenced(raw string) (dm.Themes, error) {
	m := fencedArray.FindStringSubmatch(raw)
	if m == nil {
		return nil, errors.New("no fenced json array found")
	}
	return decodeThemes([]byte(m[1]))
}

// decodeThemes 解析 JSON 数组，每个元素必须是对象
func decodeThemes(data []byte) (dm.Themes, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("not a json array")
	}

	themes := make(dm.Themes, 0, len(items))
	for i, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
		themes = append(themes, dm.Theme{
			Theme:          stringField(obj["theme"]),
			Requests:       stringsField(obj["requests"]),
			Frequency:      stringField(obj["frequency"]),
			Sentiment:      stringField(obj["sentiment"]),
			BusinessImpact: stringField(obj["business_impact"]),
		})
	}
	return themes, nil
}

// stringField 缺失或 null 时返回空串，其他标量转为文本
func stringField(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return string(v)
}

// stringsField 接受字符串数组或单个字符串
func stringsField(v json.RawMessage) []string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		if s := stringField(v); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringField(item))
	}
	return out
}
