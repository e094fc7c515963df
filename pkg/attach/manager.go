package attach

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reason identifies why a candidate was rejected.
type Reason string

const (
	ReasonTooLarge         Reason = "TooLarge"
	ReasonUnsupportedType  Reason = "UnsupportedType"
	ReasonMaxCountExceeded Reason = "MaxCountExceeded"
)

// Candidate is a user-selected file offered for admission. Only metadata is
// carried; file contents never pass through this module.
type Candidate struct {
	Name     string
	Size     int64
	MIMEType string
}

// Attachment is an admitted file held in preview form.
type Attachment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"byteSize"`
	MIMEType  string    `json:"mimeType"`
	Preview   Handle    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rejection reports one refused candidate and every limit it violated.
type Rejection struct {
	Name    string   `json:"name"`
	Reasons []Reason `json:"reasons"`
}

// Result is the outcome of one admission batch.
type Result struct {
	Accepted []Attachment `json:"accepted"`
	Rejected []Rejection  `json:"rejected"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithPolicy overrides the policy for one category.
func WithPolicy(category Category, policy Policy) Option {
	return func(m *Manager) {
		m.policies[category] = policy
	}
}

// WithPreviewer overrides the preview-handle allocator.
func WithPreviewer(previewer Previewer) Option {
	return func(m *Manager) {
		if previewer != nil {
			m.previewer = previewer
		}
	}
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Manager owns the two attachment lists and their preview handles. It is not
// safe for concurrent use; the wizard controller serialises access.
type Manager struct {
	policies  map[Category]Policy
	previewer Previewer
	now       func() time.Time
	lists     map[Category][]Attachment
}

// NewManager constructs a Manager with the default policies applied.
func NewManager(options ...Option) *Manager {
	m := &Manager{
		policies: map[Category]Policy{
			CategoryDocuments:     DefaultDocumentPolicy(),
			CategoryProductImages: DefaultImagePolicy(),
		},
		previewer: NewPreviewer(),
		now:       time.Now,
		lists:     make(map[Category][]Attachment),
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Add evaluates a batch of candidates against the category policy. Size and
// type violations reject per file; if admitting every size/type-clean
// candidate would push the list past the count budget, the entire batch is
// refused with MaxCountExceeded and nothing is admitted.
func (m *Manager) Add(category Category, candidates []Candidate) Result {
	policy := m.policies[category]
	var result Result

	var clean []Candidate
	for _, candidate := range candidates {
		var reasons []Reason
		if policy.MaxBytes > 0 && candidate.Size > policy.MaxBytes {
			reasons = append(reasons, ReasonTooLarge)
		}
		if !policy.allowsType(candidate.Name, candidate.MIMEType) {
			reasons = append(reasons, ReasonUnsupportedType)
		}
		if len(reasons) > 0 {
			result.Rejected = append(result.Rejected, Rejection{Name: candidate.Name, Reasons: reasons})
			continue
		}
		clean = append(clean, candidate)
	}

	if policy.MaxFiles > 0 && len(m.lists[category])+len(clean) > policy.MaxFiles {
		for _, candidate := range clean {
			result.Rejected = append(result.Rejected, Rejection{
				Name:    candidate.Name,
				Reasons: []Reason{ReasonMaxCountExceeded},
			})
		}
		return result
	}

	for _, candidate := range clean {
		attachment := Attachment{
			ID:        uuid.NewString(),
			Name:      candidate.Name,
			Size:      candidate.Size,
			MIMEType:  candidate.MIMEType,
			Preview:   m.previewer.Open(candidate.Name),
			CreatedAt: m.now(),
		}
		m.lists[category] = append(m.lists[category], attachment)
		result.Accepted = append(result.Accepted, attachment)
	}
	return result
}

// Remove drops the attachment with the given id from whichever list holds it
// and releases its preview handle. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	for category, list := range m.lists {
		for i, attachment := range list {
			if attachment.ID != id {
				continue
			}
			if attachment.Preview != nil {
				attachment.Preview.Release()
			}
			m.lists[category] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// List returns a copy of one category's attachments in admission order.
func (m *Manager) List(category Category) []Attachment {
	list := m.lists[category]
	if len(list) == 0 {
		return nil
	}
	out := make([]Attachment, len(list))
	copy(out, list)
	return out
}

// Count returns the number of admitted files in a category.
func (m *Manager) Count(category Category) int {
	return len(m.lists[category])
}

// Names returns the admitted file names for a category, used by review
// summaries and draft section reporting.
func (m *Manager) Names(category Category) []string {
	var out []string
	for _, attachment := range m.lists[category] {
		out = append(out, attachment.Name)
	}
	return out
}

// ReleaseAll releases every outstanding preview handle and empties both
// lists. It backs wizard teardown and reset, and is idempotent.
func (m *Manager) ReleaseAll() {
	for category, list := range m.lists {
		for _, attachment := range list {
			if attachment.Preview != nil {
				attachment.Preview.Release()
			}
		}
		delete(m.lists, category)
	}
}

// String implements fmt.Stringer for log-friendly summaries.
func (m *Manager) String() string {
	return fmt.Sprintf("attachments(documents=%d images=%d)",
		m.Count(CategoryDocuments), m.Count(CategoryProductImages))
}
