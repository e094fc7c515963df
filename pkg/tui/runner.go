package tui

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-vendorform/pkg/attach"
	"github.com/goliatone/go-vendorform/pkg/catalog"
	"github.com/goliatone/go-vendorform/pkg/forms"
	"github.com/goliatone/go-vendorform/pkg/review"
	"github.com/goliatone/go-vendorform/pkg/wizard"
)

// Option configures a Runner.
type Option func(*Runner)

// WithDriver overrides the prompt driver; the survey driver is the default.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithCatalog supplies the option lists rendered by select prompts.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(r *Runner) {
		if cat != nil {
			r.catalog = cat
		}
	}
}

// Runner walks a wizard controller through the terminal: prompting each
// step's fields, offering attachments on the credentials step, and showing
// the review summary before submission.
type Runner struct {
	controller *wizard.Controller
	driver     PromptDriver
	catalog    *catalog.Catalog
}

// NewRunner constructs a Runner bound to the given controller.
func NewRunner(controller *wizard.Controller, options ...Option) *Runner {
	r := &Runner{
		controller: controller,
		driver:     NewSurveyDriver(),
		catalog:    catalog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run drives the wizard to completion or abort. A resumable draft is
// announced before the first prompt.
func (r *Runner) Run(ctx context.Context) error {
	if info := r.controller.DraftInfo(ctx); info.Exists {
		msg := fmt.Sprintf("Resuming a draft saved %s ago (step %d).",
			info.Age.Round(time.Second), info.CurrentStep)
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
	}

	for {
		state := r.controller.State()
		switch state.Status {
		case wizard.StatusSubmitted:
			return r.driver.Info(ctx, "Application submitted. Thank you!")
		case wizard.StatusSubmitting:
			return nil
		}

		if state.CurrentStep < forms.StepCount {
			if err := r.runStep(ctx, state); err != nil {
				return err
			}
			continue
		}
		if err := r.runReview(ctx); err != nil {
			return err
		}
	}
}

func (r *Runner) runStep(ctx context.Context, state wizard.State) error {
	for _, field := range forms.FieldsForStep(state.CurrentStep) {
		if err := r.promptField(ctx, field, state.FormData[field.Key]); err != nil {
			return err
		}
	}
	if state.CurrentStep == 3 {
		if err := r.offerAttachments(ctx); err != nil {
			return err
		}
	}

	err := r.controller.Advance()
	if errors.Is(err, wizard.ErrStepInvalid) {
		current := r.controller.State()
		for key, message := range current.StepValidation[current.CurrentStep].Errors {
			if infoErr := r.driver.Info(ctx, fmt.Sprintf("  %s: %s", key, message)); infoErr != nil {
				return infoErr
			}
		}
		return nil // loop re-prompts the same step
	}
	return err
}

func (r *Runner) promptField(ctx context.Context, field forms.Field, current string) error {
	var (
		value string
		err   error
	)
	switch field.Class {
	case forms.ClassEnum:
		options := r.catalog.Group(field.Group)
		if len(options) == 0 {
			value, err = r.driver.Input(ctx, InputConfig{Message: field.Label, Default: current})
			break
		}
		defaultIndex := indexOf(options, current)
		if defaultIndex < 0 {
			defaultIndex = 0
		}
		var picked int
		picked, err = r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      options,
			DefaultIndex: defaultIndex,
			PageSize:     10,
		})
		if err == nil && picked >= 0 {
			value = options[picked]
		}
	case forms.ClassBoundedText:
		value, err = r.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: current,
			Help:    fmt.Sprintf("Between %d and %d characters.", field.MinLen, field.MaxLen),
		})
	default:
		value, err = r.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: current,
			Validator: func(raw string) error {
				verdict := forms.Validate(field, raw, forms.Context{})
				if verdict.Valid {
					return nil
				}
				return errors.New(verdict.Message)
			},
		})
	}
	if err != nil {
		return err
	}
	return r.controller.UpdateField(field.Key, value)
}

// offerAttachments lets the applicant attach local files on the credentials
// step. Paths are read for metadata only; contents stay on disk.
func (r *Runner) offerAttachments(ctx context.Context) error {
	prompts := []struct {
		category attach.Category
		message  string
	}{
		{attach.CategoryDocuments, "Credential document paths (comma separated, empty to skip)"},
		{attach.CategoryProductImages, "Product image paths (comma separated, empty to skip)"},
	}
	for _, prompt := range prompts {
		raw, err := r.driver.Input(ctx, InputConfig{Message: prompt.message})
		if err != nil {
			return err
		}
		candidates := candidatesFromPaths(raw)
		if len(candidates) == 0 {
			continue
		}
		result, err := r.controller.AddAttachments(prompt.category, candidates)
		if err != nil {
			return err
		}
		for _, rejection := range result.Rejected {
			msg := fmt.Sprintf("  rejected %s: %v", rejection.Name, rejection.Reasons)
			if err := r.driver.Info(ctx, msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func candidatesFromPaths(raw string) []attach.Candidate {
	var out []attach.Candidate
	for _, part := range strings.Split(raw, ",") {
		path := strings.TrimSpace(part)
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		out = append(out, attach.Candidate{
			Name:     filepath.Base(path),
			Size:     info.Size(),
			MIMEType: mime.TypeByExtension(filepath.Ext(path)),
		})
	}
	return out
}

func (r *Runner) runReview(ctx context.Context) error {
	state := r.controller.State()

	rows := review.Summarize(state.FormData)
	estimate, _ := review.EstimatedOrderValue(state.FormData)
	summary, err := review.RenderText(rows, review.Completion(state.FormData), estimate)
	if err != nil {
		return err
	}
	if err := r.driver.Info(ctx, summary); err != nil {
		return err
	}
	if docs := len(state.Documents); docs > 0 {
		if err := r.driver.Info(ctx, fmt.Sprintf("Attached documents: %d", docs)); err != nil {
			return err
		}
	}

	consents := []struct {
		key     string
		message string
	}{
		{forms.KeyTermsAccepted, "Do you accept the terms of service?"},
		{forms.KeyPrivacyAccepted, "Do you accept the privacy policy?"},
	}
	for _, consent := range consents {
		granted, err := r.driver.Confirm(ctx, ConfirmConfig{Message: consent.message})
		if err != nil {
			return err
		}
		if err := r.controller.SetConsent(consent.key, granted); err != nil {
			return err
		}
	}

	confirmed, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit your application now?", Default: true})
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrDeclined
	}

	if err := r.controller.Submit(ctx); err != nil {
		switch {
		case errors.Is(err, wizard.ErrNotSubmittable):
			if infoErr := r.driver.Info(ctx, "The application is incomplete; please review the highlighted fields."); infoErr != nil {
				return infoErr
			}
			// Walk back so the applicant can fix earlier steps.
			return r.controller.JumpTo(1)
		default:
			if infoErr := r.driver.Info(ctx, fmt.Sprintf("Submission failed: %v", err)); infoErr != nil {
				return infoErr
			}
			retry, confirmErr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
			if confirmErr != nil {
				return confirmErr
			}
			if !retry {
				return err
			}
		}
	}
	return nil
}
