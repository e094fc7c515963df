package attach

import (
	"sync"

	"github.com/google/uuid"
)

// Previewer mints preview handles for accepted files. The default
// implementation produces in-process pseudo-URIs; hosts backed by a real
// display surface can swap in their own allocator.
type Previewer interface {
	Open(name string) Handle
}

// Handle is a revocable reference that lets a selected file be displayed
// without any upload. Release is safe to call more than once; the underlying
// resource is freed exactly once.
type Handle interface {
	URI() string
	Release()
}

// NewPreviewer returns the default uuid-backed allocator.
func NewPreviewer() Previewer {
	return previewer{}
}

type previewer struct{}

func (previewer) Open(string) Handle {
	return &handle{uri: "preview://" + uuid.NewString()}
}

type handle struct {
	uri  string
	once sync.Once
}

func (h *handle) URI() string {
	return h.uri
}

func (h *handle) Release() {
	h.once.Do(func() {})
}
