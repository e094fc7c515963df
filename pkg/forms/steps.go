package forms

// ValidateStep runs every field check owned by the given step against the
// aggregate form data and returns the step verdict plus a field-keyed error
// map. Unknown step numbers validate as true so navigation clamping stays a
// controller concern. Step 3 carries only optional enrichments and is always
// valid by construction.
func ValidateStep(step int, data map[string]string, ctx Context) StepResult {
	result := StepResult{Valid: true}
	for _, field := range FieldsForStep(step) {
		verdict := Validate(field, data[field.Key], ctx)
		if verdict.Valid {
			continue
		}
		if result.Errors == nil {
			result.Errors = make(map[string]string)
		}
		result.Valid = false
		result.Errors[field.Key] = verdict.Message
	}
	return result
}

// ValidateAll evaluates every step and reports whether the whole wizard is
// submittable. Results are keyed by step number.
func ValidateAll(data map[string]string, ctx Context) map[int]StepResult {
	out := make(map[int]StepResult, StepCount)
	for step := 1; step <= StepCount; step++ {
		out[step] = ValidateStep(step, data, ctx)
	}
	return out
}
