package review

import (
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// summaryTemplate is the plain-text review layout grouped by step.
const summaryTemplate = `Vendor application summary
==========================
{% for row in rows %}{% if row.Step != row.LastStep %}
Step {{ row.Step }}
------{% endif %}
  {{ row.Label }}: {{ row.Value }}{% endfor %}

Completion: {{ completion }}%{% if estimate %}
Estimated order value: {{ estimate }}{% endif %}
`

var (
	summaryOnce sync.Once
	summaryTpl  *pongo2.Template
	summaryErr  error
)

// RenderText renders the summary rows into the plain-text layout used by
// terminal hosts. Completion arrives as a [0,1] fraction; estimate may be
// empty.
func RenderText(rows []Row, completion float64, estimate string) (string, error) {
	summaryOnce.Do(func() {
		summaryTpl, summaryErr = pongo2.FromString(summaryTemplate)
	})
	if summaryErr != nil {
		return "", fmt.Errorf("review: parse summary template: %w", summaryErr)
	}

	out, err := summaryTpl.Execute(pongo2.Context{
		"rows":       withStepBreaks(rows),
		"completion": int(completion*100 + 0.5),
		"estimate":   estimate,
	})
	if err != nil {
		return "", fmt.Errorf("review: execute summary template: %w", err)
	}
	return out, nil
}

// renderRow decorates a Row with the previous row's step so the template can
// emit a heading exactly when the step changes.
type renderRow struct {
	Label    string
	Value    string
	Step     int
	LastStep int
}

func withStepBreaks(rows []Row) []renderRow {
	out := make([]renderRow, len(rows))
	last := 0
	for i, row := range rows {
		out[i] = renderRow{Label: row.Label, Value: row.Value, Step: row.Step, LastStep: last}
		last = row.Step
	}
	return out
}
