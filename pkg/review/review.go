// Package review projects the wizard's aggregate state into a
// human-reviewable summary and owns the final submission gate. Everything
// here is a pure read: summarising never mutates form data and never runs
// validation side effects.
package review

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-vendorform/pkg/forms"
)

// Row is one line of the review summary.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Step  int    `json:"ownerStep"`
}

// Summarize renders every non-consent catalog field into labelled rows,
// keeping declaration order so the summary mirrors the wizard flow. Values
// pass the strict sanitizer so free text cannot smuggle markup into a host
// surface. Empty optional fields render a placeholder.
func Summarize(data map[string]string) []Row {
	var rows []Row
	for _, field := range forms.Fields() {
		if field.Class == forms.ClassConsent {
			continue
		}
		value := sanitize(data[field.Key])
		if value == "" {
			value = "(not provided)"
		}
		rows = append(rows, Row{Label: field.Label, Value: value, Step: field.Step})
	}
	return rows
}

// Completion reports filled required fields over total required fields,
// in [0, 1]. Consent flags are gates, not content, and are excluded.
func Completion(data map[string]string) float64 {
	required := forms.RequiredFields()
	if len(required) == 0 {
		return 1
	}
	filled := 0
	for _, key := range required {
		field, _ := forms.Lookup(key)
		if forms.Validate(field, data[key], forms.Context{}).Valid {
			filled++
		}
	}
	return float64(filled) / float64(len(required))
}

// CanSubmit is the single predicate the wizard consults before allowing
// submission: every step must validate, including both review consents.
func CanSubmit(data map[string]string, ctx forms.Context) bool {
	for step := 1; step <= forms.StepCount; step++ {
		if !forms.ValidateStep(step, data, ctx).Valid {
			return false
		}
	}
	return true
}

// EstimatedOrderValue multiplies unit price by minimum order quantity and
// formats the product with two decimals. The second return is false when
// either input is missing or not a positive number.
func EstimatedOrderValue(data map[string]string) (string, bool) {
	price, err := strconv.ParseFloat(data[forms.KeyUnitPrice], 64)
	if err != nil || price <= 0 {
		return "", false
	}
	quantity, err := strconv.ParseFloat(data[forms.KeyMOQ], 64)
	if err != nil || quantity <= 0 {
		return "", false
	}
	return fmt.Sprintf("%.2f", price*quantity), true
}
