package presenter

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"wrap":   wrap,
	"rule":   func(width int) string { return strings.Repeat("=", width) },
	"upper":  strings.ToUpper,
	"plural": plural,
	"deref":  func(p *int) int { return *p },
}

var resultTemplate = template.Must(template.New("result").Funcs(funcs).Parse(`{{rule .Skin.Width}}
{{.Skin.Title}}
{{rule .Skin.Width}}
{{with .View}}{{if .Badge}}[{{.Badge}}] {{end}}{{.Title}}
{{wrap .Message $.Skin.Width}}
{{- if .RemoteStatus}}

Status: {{upper .RemoteStatus}}{{if .SubmissionID}}  (ref {{.SubmissionID}}){{end}}
{{- if .Reason}}
Reason: {{.Reason}}{{end}}
{{- range .Notes}}
  * {{.}}{{end}}
{{- end}}
{{- if .Score}}

Eligibility score: {{deref .Score}}
{{- if .Factors}}

Assessment factors:
{{- range .Factors}}
  - {{.}}{{end}}{{end}}
{{- if .Recommendations}}

Recommendations:
{{- range .Recommendations}}
  - {{.}}{{end}}{{end}}
{{- end}}
{{- with .Notice}}{{if .Items}}

Details:
{{- range .Items}}
  - {{.}}{{end}}{{end}}{{end}}

Application summary
  Company:       {{.Summary.Company}}
  Employees:     {{.Summary.Employees}}
  Locations:     {{.Summary.Locations}} location{{plural .Summary.Locations}}
  Workforce:     {{.Summary.Workforce}}
{{- if .Summary.Communication}}
  Communication: {{.Summary.Communication}}{{end}}
  Goals:         {{.Summary.Goals}} selected
  Contact:       {{.Summary.ContactName}} <{{.Summary.ContactEmail}}>
{{- if .NextSteps}}

What happens next?
{{- range .NextSteps}}
  - {{.}}{{end}}{{end}}
{{end}}`))

// Render writes the text form of v.
func Render(w io.Writer, v View, skin Skin) error {
	if skin.Width < minWidth {
		skin.Width = minWidth
	}
	data := struct {
		View View
		Skin Skin
	}{v, skin}
	if err := resultTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("presenter: render %s view: %w", v.Kind, err)
	}
	return nil
}

// wrap breaks text on spaces so no line exceeds width. Longer words stay whole.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	line := 0
	for i, word := range words {
		if i > 0 {
			if line+1+len(word) > width {
				b.WriteByte('\n')
				line = 0
			} else {
				b.WriteByte(' ')
				line++
			}
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
