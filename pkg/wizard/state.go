package wizard

import (
	"errors"

	"github.com/goliatone/go-vendorform/pkg/attach"
	"github.com/goliatone/go-vendorform/pkg/forms"
)

// Status is the wizard machine's lifecycle phase. While editing, the current
// step number carries the fine-grained position.
type Status string

const (
	StatusEditing    Status = "editing"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
	StatusFailed     Status = "failed"
)

// State is a point-in-time copy of the wizard aggregate handed to hosts and
// observers. Mutating it has no effect on the controller.
type State struct {
	Status         Status                   `json:"status"`
	CurrentStep    int                      `json:"currentStep"`
	FormData       map[string]string        `json:"formData"`
	StepValidation map[int]forms.StepResult `json:"stepValidation"`
	Documents      []attach.Attachment      `json:"documents"`
	ProductImages  []attach.Attachment      `json:"productImages"`
	SubmitError    string                   `json:"submitError,omitempty"`
}

// Navigation and lifecycle guard errors.
var (
	ErrStepInvalid    = errors.New("wizard: current step has validation errors")
	ErrForwardJump    = errors.New("wizard: cannot jump ahead of the current step")
	ErrInvalidStep    = errors.New("wizard: step number out of range")
	ErrNotAtReview    = errors.New("wizard: submission is only allowed from the review step")
	ErrNotSubmittable = errors.New("wizard: application is not complete")
	ErrSubmitInFlight = errors.New("wizard: a submission is already in flight")
	ErrSubmitted      = errors.New("wizard: application already submitted")
	ErrNoSubmitter    = errors.New("wizard: no submitter configured")
)
