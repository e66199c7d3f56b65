package generation

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/scorelab-api/internal/profile"
)

// DefaultTemplate is the coaching note rendered when no LLM is configured.
const DefaultTemplate = `Your simulated score is {{.Score}}, which falls in the {{.Band}} range.
{{- if eq .AccountCount 0}}
You have no accounts yet, so the score rests on an empty file. Add the accounts you hold to see a realistic estimate.
{{- else}}
You have {{.AccountCount}} {{plural .AccountCount "account" "accounts"}} with overall utilization of {{.UtilizationPercent}}.
{{- end}}
{{- if gt .RecentLatePayments 0}}
{{.RecentLatePayments}} late {{plural .RecentLatePayments "payment" "payments"}} in the last year {{plural .RecentLatePayments "is" "are"}} weighing on your payment history.
{{- end}}
{{- if gt .CollectionAccounts 0}}
Accounts in collection carry the heaviest penalty; resolving them matters most.
{{- end}}
{{- if .Factors}}

Where to focus:
{{- range $i, $f := .Factors}}
{{inc $i}}. {{$f.Name}} (sub-score {{$f.CurrentScore}}): up to +{{$f.PotentialImprovement}} points over {{$f.TimeToImprove}}.
{{- range $f.Actions}}
   - {{.}}
{{- end}}
{{- end}}
{{- else}}

No factor is currently holding your score back. Keep paying on time and keep balances low.
{{- end}}
{{- if gt .ValidationIssues 0}}

Note: {{.ValidationIssues}} {{plural .ValidationIssues "value looks" "values look"}} out of range, so this estimate may be off.
{{- end}}
`

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

// TemplateExplainer renders a text/template against the snapshot's PromptData.
type TemplateExplainer struct {
	tmpl *template.Template
}

var _ Explainer = (*TemplateExplainer)(nil)

// NewTemplateExplainer parses text as the explanation template. An empty text
// selects DefaultTemplate.
func NewTemplateExplainer(text string) (*TemplateExplainer, error) {
	if text == "" {
		text = DefaultTemplate
	}
	tmpl, err := template.New("explanation").Funcs(templateFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse explanation template: %v", ErrInvalidConfig, err)
	}
	return &TemplateExplainer{tmpl: tmpl}, nil
}

// Explain implements Explainer.
func (e *TemplateExplainer) Explain(_ context.Context, snapshot profile.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, NewPromptData(snapshot)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExplanationFailed, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// RenderPrompt executes tmpl against the snapshot's PromptData. It is used by
// LLM-backed explainers to build their prompts.
func RenderPrompt(tmpl *template.Template, snapshot profile.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewPromptData(snapshot)); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// TemplateFuncs returns the helper functions available to explanation templates.
func TemplateFuncs() template.FuncMap {
	out := make(template.FuncMap, len(templateFuncs))
	for k, v := range templateFuncs {
		out[k] = v
	}
	return out
}
