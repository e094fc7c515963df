package vendorform

import (
	"context"

	"github.com/goliatone/go-vendorform/pkg/attach"
	"github.com/goliatone/go-vendorform/pkg/catalog"
	"github.com/goliatone/go-vendorform/pkg/draft"
	"github.com/goliatone/go-vendorform/pkg/tui"
	"github.com/goliatone/go-vendorform/pkg/wizard"
)

// Controller is the vendor registration state machine; alias exported via the
// root package for convenience.
type Controller = wizard.Controller

// State is a read-only snapshot of the wizard aggregate.
type State = wizard.State

// Status is the wizard lifecycle phase.
type Status = wizard.Status

// Submitter is the external intake boundary consumed on final submission.
type Submitter = wizard.Submitter

// Option configures the wizard controller.
type Option = wizard.Option

// NewController exposes the wizard constructor from the top-level module.
func NewController(options ...Option) *Controller {
	return wizard.New(options...)
}

// NewDrafts builds the dual-scope draft persistence composite.
func NewDrafts(options ...draft.Option) *draft.Drafts {
	return draft.New(options...)
}

// NewAttachments builds the transient attachment manager.
func NewAttachments(options ...attach.Option) *attach.Manager {
	return attach.NewManager(options...)
}

// Run drives a controller through the interactive terminal wizard. It is the
// simplest entry point for callers that just want the guided flow.
func Run(ctx context.Context, controller *Controller, options ...tui.Option) error {
	runner := tui.NewRunner(controller, options...)
	return runner.Run(ctx)
}

// Options returns the bundled catalog enumerations keyed by group name,
// ready to pass to wizard.WithValidationContext.
func Options() map[string][]string {
	return catalog.Default().Groups()
}
