package report

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/scanlens/scanlens/internal/types"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"severities": types.Severities,
	"highlight":  highlightSnippet,
	"short":      shortCommit,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Code Analysis Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
h1 { border-bottom: 2px solid #ddd; padding-bottom: .4rem; }
table { border-collapse: collapse; width: 100%; margin: .6rem 0 1.4rem; }
th, td { border: 1px solid #ddd; padding: .35rem .6rem; text-align: left; font-size: .92rem; }
th { background: #f5f5f5; }
.sev { font-weight: 600; text-transform: uppercase; font-size: .8rem; }
.sev-critical { color: #b00020; }
.sev-high { color: #d84315; }
.sev-medium { color: #b8860b; }
.sev-low { color: #2e7d32; }
.sev-info { color: #546e7a; }
.snippet { background: #272822; border-radius: 4px; padding: .6rem .8rem; overflow-x: auto; margin: .3rem 0 1rem; }
.snippet pre { margin: 0; }
.fix { color: #2e7d32; font-size: .88rem; margin: 0 0 1rem; }
.insights { background: #eef4fb; border-left: 4px solid #1565c0; padding: .8rem 1rem; margin: 1rem 0; }
.cancelled { background: #fff3e0; border-left: 4px solid #ef6c00; padding: .6rem 1rem; }
.meta { color: #666; font-size: .9rem; }
</style>
</head>
<body>
<h1>Code Analysis Report</h1>
<p class="meta">Root: <code>{{.Root}}</code>{{with .Repo}} &middot; {{.Branch}} @ {{short .Commit}}{{end}}</p>
{{if .Cancelled}}<p class="cancelled">Scan was cancelled; results are partial.</p>{{end}}

<h2>Summary</h2>
<table>
<tr><th>Files analyzed</th><td>{{.Summary.TotalFiles}}</td></tr>
<tr><th>Issues found</th><td>{{.Summary.TotalIssues}}</td></tr>
{{range $sev := severities}}{{with index $.Summary.IssuesBySeverity $sev}}<tr><th class="sev sev-{{$sev}}">{{$sev}}</th><td>{{.}}</td></tr>
{{end}}{{end}}</table>

{{with .AIInsights}}
<div class="insights">
<p>{{.Summary}}</p>
<ul>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul>
</div>
{{end}}

{{range $path := .Paths}}{{$fr := index $.Files $path}}{{if $fr.Issues}}
<h2><code>{{$path}}</code> <span class="meta">({{$fr.Language}})</span></h2>
<table>
<tr><th>Line</th><th>Severity</th><th>Rule</th><th>Message</th></tr>
{{range $fr.Issues}}<tr><td>{{.Line}}</td><td class="sev sev-{{.Severity}}">{{.Severity}}</td><td><code>{{.RuleID}}</code></td><td>{{.Message}}</td></tr>
{{end}}</table>
{{range $fr.Issues}}{{if .CodeSnippet}}
<div class="snippet">{{highlight .CodeSnippet $fr.Language}}</div>
{{if .FixSuggestion}}<p class="fix">Fix: {{.FixSuggestion}}</p>{{end}}
{{end}}{{end}}
{{end}}{{end}}
</body>
</html>
`))

// WriteHTML renders a standalone styled page with highlighted snippets.
func WriteHTML(w io.Writer, res *types.ScanResult) error {
	return htmlTemplate.Execute(w, res)
}

// highlightSnippet runs chroma over a snippet and returns safe HTML.
// Any failure falls back to plain escaped text.
func highlightSnippet(code string, lang types.Language) template.HTML {
	lexer := lexers.Get(string(lang))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := chromahtml.New(chromahtml.WithClasses(false))

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plainSnippet(code)
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return plainSnippet(code)
	}
	return template.HTML(buf.String())
}

func plainSnippet(code string) template.HTML {
	var b strings.Builder
	b.WriteString("<pre>")
	template.HTMLEscape(&b, []byte(code))
	b.WriteString("</pre>")
	return template.HTML(b.String())
}
