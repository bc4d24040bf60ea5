package present

import (
	"html/template"
	"io"
)

// Page HTML 报告渲染所需的数据
type Page struct {
	Date         string
	Source       string
	Column       string
	RequestCount int
	Prompt       string
	Parsed       bool
	Raw          string
	Rows         []Row
	Scores       []Score
}

var pageTpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"barWidth": func(score int) int { return score * 100 / 3 },
}).Parse(htmlTpl))

// WriteHTML 渲染独立的 HTML 报告
func WriteHTML(w io.Writer, p Page) error {
	return pageTpl.Execute(w, p)
}

const htmlTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Feature Request Analyzer</title>
    <style>
        :root {
            --primary-color: #2563eb;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 1100px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 30px; }
        h1 { font-size: 2.2rem; margin: 0 0 10px 0; }
        .date-info { color: var(--text-secondary); }
        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 24px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
            border: 1px solid var(--border-color);
        }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 8px 10px; border-bottom: 1px solid #f1f5f9; vertical-align: top; }
        th { color: #475569; }
        .bar-row { display: flex; align-items: center; margin-bottom: 8px; }
        .bar-label { width: 240px; flex-shrink: 0; }
        .bar { background: var(--primary-color); height: 18px; border-radius: 4px; }
        .bar-value { margin-left: 8px; color: var(--text-secondary); }
        .error { border-left: 4px solid #ef4444; background: #fef2f2; }
        pre { white-space: pre-wrap; word-break: break-word; background: #f1f5f9; padding: 12px; border-radius: 8px; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Feature Request Analyzer</h1>
            <div class="date-info">{{ .Date }} • {{ .Source }} • column "{{ .Column }}" • {{ .RequestCount }} requests</div>
        </header>

        {{if .Parsed}}
        <div class="card">
            <h2>Themes</h2>
            <table>
                <thead><tr><th>Theme</th><th>Frequency</th><th>Impact</th><th>Sentiment</th><th>Examples</th></tr></thead>
                <tbody>
                {{range .Rows}}
                    <tr><td>{{.Theme}}</td><td>{{.Frequency}}</td><td>{{.Impact}}</td><td>{{.Sentiment}}</td><td>{{.Examples}}</td></tr>
                {{end}}
                </tbody>
            </table>
        </div>

        <div class="card">
            <h2>Frequency score</h2>
            {{range .Scores}}
            <div class="bar-row">
                <div class="bar-label">{{.Theme}}</div>
                <div class="bar" style="width: {{barWidth .Score}}%"></div>
                <div class="bar-value">{{.Score}}</div>
            </div>
            {{end}}
        </div>
        {{else}}
        <div class="card error">
            <h2>Could not parse the model response</h2>
            <pre>{{.Raw}}</pre>
        </div>
        {{end}}

        {{if .Prompt}}
        <div class="card">
            <h2>Prompt</h2>
            <pre>{{.Prompt}}</pre>
        </div>
        {{end}}
    </div>
</body>
</html>
`
