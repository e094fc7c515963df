package forms

// Class is the simplified enum of validation behaviours a field can carry.
type Class string

const (
	ClassText           Class = "text"
	ClassEmail          Class = "email"
	ClassPhone          Class = "phone"
	ClassPositiveNumber Class = "positiveNumber"
	ClassBoundedText    Class = "boundedText"
	ClassEnum           Class = "enum"
	ClassConsent        Class = "consent"
)

// Reason identifies why a field failed validation. Reasons are string-based
// for debuggability and stable JSON serialization.
type Reason string

const (
	ReasonEmpty         Reason = "Empty"
	ReasonFormat        Reason = "Format"
	ReasonTooShort      Reason = "TooShort"
	ReasonTooLong       Reason = "TooLong"
	ReasonUnknownOption Reason = "UnknownOption"
	ReasonNotAccepted   Reason = "NotAccepted"
)

// Field describes a single wizard input: which step owns it, how it is
// labelled, and which validation class applies. Bounded text carries its
// character limits inline; enum fields name the catalog group their value
// must belong to.
type Field struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Step     int    `json:"step"`
	Class    Class  `json:"class"`
	Required bool   `json:"required"`
	MinLen   int    `json:"minLen,omitempty"`
	MaxLen   int    `json:"maxLen,omitempty"`
	Group    string `json:"group,omitempty"`
}

// Verdict is the outcome of validating a single field value.
type Verdict struct {
	Valid   bool   `json:"valid"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// StepResult aggregates field verdicts for one wizard step.
type StepResult struct {
	Valid  bool              `json:"isValid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Context carries the read-only collaborators field validation may consult.
// Options maps a catalog group name to its allowed values; a nil map (or a
// missing group) disables membership checks so catalogs stay optional.
type Context struct {
	Options map[string][]string
}

func (c Context) allows(group, value string) bool {
	if c.Options == nil {
		return true
	}
	options, ok := c.Options[group]
	if !ok || len(options) == 0 {
		return true
	}
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
