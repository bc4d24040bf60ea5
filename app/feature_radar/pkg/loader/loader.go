// Package loader 读取上传的 CSV 文件并提取需求列
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	dm "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/model"
)

// PreviewRows 预览默认展示的行数
const PreviewRows = 5

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// naValues 常见表格工具默认视为缺失值的单元格内容
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Table 已解析的 CSV，首行为表头
type Table struct {
	Header []string
	Rows   [][]string
}

// Load 解析 CSV
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %v", dm.ErrInput, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: file is empty", dm.ErrInput)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1 // 允许行长度不一致
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", dm.ErrInput, err)
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parse csv: %v", dm.ErrInput, err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// ColumnIndex 返回列名匹配的列下标（忽略大小写和首尾空白），不存在时返回第一列
func (t *Table) ColumnIndex(column string) int {
	want := strings.TrimSpace(column)
	if want == "" {
		return 0
	}
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i
		}
	}
	return 0
}

// Corpus 提取需求列，丢弃空值和缺失值
func (t *Table) Corpus(column string) (dm.Corpus, error) {
	if len(t.Header) == 0 {
		return dm.Corpus{}, fmt.Errorf("%w: file has no columns", dm.ErrInput)
	}
	idx := t.ColumnIndex(column)

	corpus := dm.Corpus{Column: t.Header[idx]}
	for _, row := range t.Rows {
		if idx >= len(row) || isMissing(row[idx]) {
			continue
		}
		corpus.Requests = append(corpus.Requests, row[idx])
	}
	if corpus.Len() == 0 {
		return corpus, fmt.Errorf("%w: column %q has no non-empty values", dm.ErrInput, corpus.Column)
	}
	return corpus, nil
}

// Preview 返回前 n 行
func (t *Table) Preview(n int) [][]string {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

func isMissing(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return true
	}
	_, ok := naValues[trimmed]
	return ok
}
