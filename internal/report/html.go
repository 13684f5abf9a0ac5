package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// reportTemplate renders the full report payload as a standalone HTML page.
var reportTemplate = template.Must(template.New("traceability").Funcs(template.FuncMap{
	"pct":  func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"join": func(ids []string) string { return strings.Join(ids, ", ") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Traceability Report</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 0.2em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
th { background: #f4f4f4; }
.gap { color: #a00; }
.covered { color: #070; }
.uncovered { color: #a00; }
</style>
</head>
<body>
<h1>Traceability Report</h1>
<p>Generated by {{.Report.Tool}} {{.Report.Version}} at {{.Report.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>

<h2>Summary</h2>
<table>
<tr><th>Requirements</th><td>{{.Summary.TotalRequirements}}</td></tr>
<tr><th>User stories</th><td>{{.Summary.TotalUserStories}}</td></tr>
<tr><th>Test cases</th><td>{{.Summary.TotalTestCases}}</td></tr>
<tr><th>Suites</th><td>{{.Summary.TotalSuites}}</td></tr>
<tr><th>Passed / failed / skipped</th><td>{{.Summary.Passed}} / {{.Summary.Failed}} / {{.Summary.Skipped}}</td></tr>
<tr><th>Requirement coverage</th><td>{{pct .Summary.RequirementCoverage}} ({{.Summary.CoveredRequirements}}/{{.Summary.TotalRequirements}})</td></tr>
<tr><th>Story coverage</th><td>{{pct .Summary.StoryCoverage}} ({{.Summary.CoveredStories}}/{{.Summary.TotalUserStories}})</td></tr>
</table>

<h2>Coverage by Requirement Type</h2>
<table>
<tr><th>Type</th><th>Total</th><th>Covered</th><th>Percentage</th></tr>
{{range $type, $cov := .Coverage.ByRequirementType}}<tr><td>{{$type}}</td><td>{{$cov.Total}}</td><td>{{$cov.Covered}}</td><td>{{pct $cov.Percentage}}</td></tr>
{{end}}</table>

<h2>Coverage by Priority</h2>
<table>
<tr><th>Priority</th><th>Total</th><th>Covered</th><th>Percentage</th></tr>
{{range $priority, $cov := .Coverage.ByPriority}}<tr><td>{{$priority}}</td><td>{{$cov.Total}}</td><td>{{$cov.Covered}}</td><td>{{pct $cov.Percentage}}</td></tr>
{{end}}</table>

<h2>Critical Gaps</h2>
{{if .CriticalGaps}}<table>
<tr><th>Kind</th><th>Requirement</th><th>Title</th></tr>
{{range .CriticalGaps}}<tr class="gap"><td>{{.Kind}}</td><td>{{.RequirementID}}</td><td>{{.Title}}</td></tr>
{{end}}</table>{{else}}<p class="covered">No critical gaps.</p>{{end}}

<h2>Traceability Matrix</h2>
<table>
<tr><th>Requirement</th><th>Covering test cases</th></tr>
{{range .Details.Requirements}}<tr><td>{{.ID}}</td><td class="{{if .Coverage.Covered}}covered{{else}}uncovered{{end}}">{{if .Coverage.Tests}}{{join .Coverage.Tests}}{{else}}&mdash;{{end}}</td></tr>
{{end}}</table>
<table>
<tr><th>User story</th><th>Linked requirements</th><th>Covering test cases</th></tr>
{{range .Details.UserStories}}<tr><td>{{.ID}}</td><td>{{join .Requirements}}</td><td class="{{if .Coverage.Covered}}covered{{else}}uncovered{{end}}">{{if .Coverage.Tests}}{{join .Coverage.Tests}}{{else}}&mdash;{{end}}</td></tr>
{{end}}</table>

<h2>Test Cases</h2>
<table>
<tr><th>ID</th><th>Title</th><th>Type</th><th>Priority</th><th>Status</th><th>Requirements</th><th>Stories</th></tr>
{{range .Details.TestCases}}<tr><td>{{.ID}}</td><td>{{.Title}}</td><td>{{.Type}}</td><td>{{.Priority}}</td><td>{{.Status}}</td><td>{{join .Requirements}}</td><td>{{join .UserStories}}</td></tr>
{{end}}</table>
</body>
</html>
`))

func (g *Generator) writeHTML(data *Data) error {
	path := filepath.Join(g.outputDir, FileHTML)

	f, err := os.Create(path)
	if err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}
	return nil
}
