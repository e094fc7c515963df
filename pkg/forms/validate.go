package forms

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Validate applies the field's validation class to a raw value and returns a
// Verdict. Optional fields accept the empty string outright; every other
// verdict is computed from the trimmed value.
func Validate(field Field, raw string, ctx Context) Verdict {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		if !field.Required {
			return Verdict{Valid: true}
		}
		if field.Class == ClassConsent {
			return invalid(ReasonNotAccepted, fmt.Sprintf("%s is required", field.Label))
		}
		return invalid(ReasonEmpty, fmt.Sprintf("%s is required", field.Label))
	}

	switch field.Class {
	case ClassText:
		return Verdict{Valid: true}
	case ClassEmail:
		return validateEmail(field, trimmed)
	case ClassPhone:
		return validatePhone(field, trimmed)
	case ClassPositiveNumber:
		return validatePositiveNumber(field, trimmed)
	case ClassBoundedText:
		return validateBoundedText(field, trimmed)
	case ClassEnum:
		if !ctx.allows(field.Group, trimmed) {
			return invalid(ReasonUnknownOption, fmt.Sprintf("%s is not a recognised option", field.Label))
		}
		return Verdict{Valid: true}
	case ClassConsent:
		if !IsTrue(trimmed) {
			return invalid(ReasonNotAccepted, fmt.Sprintf("%s must be accepted", field.Label))
		}
		return Verdict{Valid: true}
	default:
		return Verdict{Valid: true}
	}
}

// validateEmail checks the local@domain.tld shape: exactly the minimum a
// client-side gate needs, not a full RFC 5322 parse.
func validateEmail(field Field, value string) Verdict {
	if strings.ContainsFunc(value, unicode.IsSpace) {
		return formatFailure(field)
	}
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 {
		return formatFailure(field)
	}
	domain := value[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return formatFailure(field)
	}
	return Verdict{Valid: true}
}

func validatePhone(field Field, value string) Verdict {
	digits := 0
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return formatFailure(field)
		}
	}
	if digits < 10 {
		return formatFailure(field)
	}
	return Verdict{Valid: true}
}

func validatePositiveNumber(field Field, value string) Verdict {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) || parsed <= 0 {
		return invalid(ReasonFormat, fmt.Sprintf("%s must be a positive number", field.Label))
	}
	return Verdict{Valid: true}
}

func validateBoundedText(field Field, value string) Verdict {
	length := len([]rune(value))
	if field.MinLen > 0 && length < field.MinLen {
		return invalid(ReasonTooShort, fmt.Sprintf("%s must be at least %d characters", field.Label, field.MinLen))
	}
	if field.MaxLen > 0 && length > field.MaxLen {
		return invalid(ReasonTooLong, fmt.Sprintf("%s must be at most %d characters", field.Label, field.MaxLen))
	}
	return Verdict{Valid: true}
}

func formatFailure(field Field) Verdict {
	return invalid(ReasonFormat, fmt.Sprintf("%s has an invalid format", field.Label))
}

func invalid(reason Reason, message string) Verdict {
	return Verdict{Reason: reason, Message: message}
}
