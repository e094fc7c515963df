package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-vendorform/pkg/attach"
	"github.com/goliatone/go-vendorform/pkg/draft"
	"github.com/goliatone/go-vendorform/pkg/forms"
	"github.com/goliatone/go-vendorform/pkg/review"
)

// Submitter is the external intake boundary. Implementations classify their
// failures; the controller only cares whether the call succeeded.
type Submitter interface {
	Submit(ctx context.Context, payload map[string]any) error
}

// Observer receives a state snapshot after every mutation.
type Observer func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithDrafts injects the draft persistence composite.
func WithDrafts(drafts *draft.Drafts) Option {
	return func(c *Controller) {
		if drafts != nil {
			c.drafts = drafts
		}
	}
}

// WithAttachments injects the attachment manager.
func WithAttachments(manager *attach.Manager) Option {
	return func(c *Controller) {
		if manager != nil {
			c.attachments = manager
		}
	}
}

// WithSubmitter injects the intake boundary client.
func WithSubmitter(submitter Submitter) Option {
	return func(c *Controller) {
		c.submitter = submitter
	}
}

// WithValidationContext injects catalog enumerations into field validation.
func WithValidationContext(ctx forms.Context) Option {
	return func(c *Controller) {
		c.vctx = ctx
	}
}

// WithAutosaveDelay overrides the debounce window for draft auto-saves.
func WithAutosaveDelay(delay time.Duration) Option {
	return func(c *Controller) {
		if delay > 0 {
			c.autosaveDelay = delay
		}
	}
}

// WithObserver registers a state observer.
func WithObserver(observers ...Observer) Option {
	return func(c *Controller) {
		for _, observer := range observers {
			if observer != nil {
				c.observers = append(c.observers, observer)
			}
		}
	}
}

// Controller is the wizard state machine and the single writer of wizard
// state. Its methods are safe for concurrent use so the auto-save timer and
// a UI event loop can coexist, but there is no concurrent-mutation design:
// sequential field updates are last-write-wins.
type Controller struct {
	mu sync.Mutex

	status         Status
	currentStep    int
	formData       map[string]string
	stepValidation map[int]forms.StepResult
	submitErr      error

	drafts        *draft.Drafts
	attachments   *attach.Manager
	submitter     Submitter
	vctx          forms.Context
	autosaveDelay time.Duration
	autosave      *saver
	observers     []Observer
}

// New constructs a Controller, rehydrating form data and position from an
// unexpired draft when one exists.
func New(options ...Option) *Controller {
	c := &Controller{
		status:         StatusEditing,
		currentStep:    1,
		formData:       make(map[string]string),
		stepValidation: make(map[int]forms.StepResult),
		drafts:         draft.New(),
		attachments:    attach.NewManager(),
		autosaveDelay:  DefaultAutosaveDelay,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	c.autosave = newSaver(c.autosaveDelay, c.persistDraft)

	if record, ok := c.drafts.Load(context.Background()); ok {
		for key, value := range record.FormData {
			c.formData[key] = value
		}
		c.currentStep = clampStep(record.CurrentStep)
	}
	c.revalidateAll()
	return c
}

// State returns a deep copy of the current aggregate.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// UpdateField mutates one form value, re-validates the owning step, and arms
// the debounced auto-save. Rejected once a submission is in flight or done.
func (c *Controller) UpdateField(key, value string) error {
	c.mu.Lock()
	if err := c.mutableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.formData[key] = value
	if step := forms.StepOf(key); step > 0 {
		c.stepValidation[step] = forms.ValidateStep(step, c.formData, c.vctx)
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.autosave.Schedule()
	c.notify(snapshot)
	return nil
}

// SetConsent records a review-step consent flag.
func (c *Controller) SetConsent(key string, granted bool) error {
	value := "false"
	if granted {
		value = "true"
	}
	return c.UpdateField(key, value)
}

// AddAttachments forwards candidates to the attachment manager. The result
// carries per-file and batch-level rejections as data.
func (c *Controller) AddAttachments(category attach.Category, candidates []attach.Candidate) (attach.Result, error) {
	c.mu.Lock()
	if err := c.mutableLocked(); err != nil {
		c.mu.Unlock()
		return attach.Result{}, err
	}
	result := c.attachments.Add(category, candidates)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	return result, nil
}

// RemoveAttachment drops an attachment by id; unknown ids are a no-op.
func (c *Controller) RemoveAttachment(id string) {
	c.mu.Lock()
	c.attachments.Remove(id)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Advance moves to the next step, gated on the current step's validity.
// Calling it past the last step is a no-op.
func (c *Controller) Advance() error {
	c.mu.Lock()
	if err := c.mutableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	result := forms.ValidateStep(c.currentStep, c.formData, c.vctx)
	c.stepValidation[c.currentStep] = result
	if !result.Valid {
		snapshot := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snapshot)
		return ErrStepInvalid
	}
	if c.currentStep < forms.StepCount {
		c.currentStep++
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persistDraft()
	c.notify(snapshot)
	return nil
}

// Retreat moves back one step without any validity requirement; a no-op on
// the first step.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	if err := c.mutableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.currentStep > 1 {
		c.currentStep--
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persistDraft()
	c.notify(snapshot)
	return nil
}

// JumpTo navigates directly to an already-visited step. Forward jumps are
// refused so sequential validation cannot be bypassed.
func (c *Controller) JumpTo(step int) error {
	c.mu.Lock()
	if err := c.mutableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if step < 1 || step > forms.StepCount {
		c.mu.Unlock()
		return ErrInvalidStep
	}
	if step > c.currentStep {
		c.mu.Unlock()
		return ErrForwardJump
	}
	c.currentStep = step
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persistDraft()
	c.notify(snapshot)
	return nil
}

// Submit drives the submission lifecycle. It is only allowed from the review
// step with the whole application submittable; while the boundary call is in
// flight the machine sits in Submitting and refuses duplicates. Success
// clears the draft and terminates the machine; failure preserves everything
// and allows retry.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.status {
	case StatusSubmitted:
		c.mu.Unlock()
		return ErrSubmitted
	case StatusSubmitting:
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if c.currentStep != forms.StepCount {
		c.mu.Unlock()
		return ErrNotAtReview
	}
	c.revalidateAllLocked()
	if !review.CanSubmit(c.formData, c.vctx) {
		snapshot := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snapshot)
		return ErrNotSubmittable
	}
	if c.submitter == nil {
		c.mu.Unlock()
		return ErrNoSubmitter
	}

	c.status = StatusSubmitting
	c.submitErr = nil
	payload := c.payloadLocked()
	inFlight := c.snapshotLocked()
	c.mu.Unlock()

	c.autosave.Cancel()
	c.notify(inFlight)

	err := c.submitter.Submit(ctx, payload)

	c.mu.Lock()
	if err != nil {
		c.status = StatusFailed
		c.submitErr = err
	} else {
		c.status = StatusSubmitted
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if err == nil {
		_ = c.drafts.Clear(context.WithoutCancel(ctx))
		c.attachments.ReleaseAll()
	}
	c.notify(snapshot)
	return err
}

// Reset restores the initial empty state: attachments released, draft
// cleared, back to step one. Idempotent.
func (c *Controller) Reset() {
	c.autosave.Cancel()

	c.mu.Lock()
	c.status = StatusEditing
	c.currentStep = 1
	c.formData = make(map[string]string)
	c.submitErr = nil
	c.attachments.ReleaseAll()
	c.revalidateAllLocked()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	_ = c.drafts.Clear(context.Background())
	c.notify(snapshot)
}

// Close tears the wizard down: any pending auto-save is flushed so no edit
// is lost, and every preview handle is released. Safe to call more than
// once.
func (c *Controller) Close() {
	c.autosave.Flush()
	c.mu.Lock()
	c.attachments.ReleaseAll()
	c.mu.Unlock()
}

// DraftInfo summarises the stored draft without mutating it.
func (c *Controller) DraftInfo(ctx context.Context) draft.Info {
	return c.drafts.Info(ctx)
}

func (c *Controller) mutableLocked() error {
	switch c.status {
	case StatusSubmitted:
		return ErrSubmitted
	case StatusSubmitting:
		return ErrSubmitInFlight
	}
	return nil
}

func (c *Controller) revalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revalidateAllLocked()
}

func (c *Controller) revalidateAllLocked() {
	c.stepValidation = forms.ValidateAll(c.formData, c.vctx)
}

func (c *Controller) snapshotLocked() State {
	data := make(map[string]string, len(c.formData))
	for k, v := range c.formData {
		data[k] = v
	}
	validation := make(map[int]forms.StepResult, len(c.stepValidation))
	for step, result := range c.stepValidation {
		validation[step] = result
	}
	state := State{
		Status:         c.status,
		CurrentStep:    c.currentStep,
		FormData:       data,
		StepValidation: validation,
		Documents:      c.attachments.List(attach.CategoryDocuments),
		ProductImages:  c.attachments.List(attach.CategoryProductImages),
	}
	if c.submitErr != nil {
		state.SubmitError = c.submitErr.Error()
	}
	return state
}

// persistDraft snapshots form data and position into the draft composite.
// Persistence is best-effort: failures leave the wizard untouched.
func (c *Controller) persistDraft() {
	c.mu.Lock()
	if c.status != StatusEditing && c.status != StatusFailed {
		c.mu.Unlock()
		return
	}
	data := make(map[string]string, len(c.formData))
	for k, v := range c.formData {
		data[k] = v
	}
	step := c.currentStep
	c.mu.Unlock()

	_ = c.drafts.Save(context.Background(), data, step)
}

func (c *Controller) payloadLocked() map[string]any {
	formData := make(map[string]any, len(c.formData))
	for k, v := range c.formData {
		formData[k] = v
	}
	return map[string]any{
		"sessionId":   c.drafts.SessionID(),
		"submittedAt": time.Now().UTC().Format(time.RFC3339),
		"formData":    formData,
		"attachments": map[string]any{
			"documents":     attachmentPayload(c.attachments.List(attach.CategoryDocuments)),
			"productImages": attachmentPayload(c.attachments.List(attach.CategoryProductImages)),
		},
	}
}

func attachmentPayload(list []attach.Attachment) []any {
	out := make([]any, 0, len(list))
	for _, attachment := range list {
		out = append(out, map[string]any{
			"name":     attachment.Name,
			"byteSize": attachment.Size,
			"mimeType": attachment.MIMEType,
		})
	}
	return out
}

func (c *Controller) notify(state State) {
	for _, observer := range c.observers {
		observer(state)
	}
}

func clampStep(step int) int {
	if step < 1 {
		return 1
	}
	if step > forms.StepCount {
		return forms.StepCount
	}
	return step
}
