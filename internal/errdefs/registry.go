package errdefs

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// registryCapacity bounds stored messages; the oldest entry is evicted
// first. A single command rarely accumulates more than a handful.
const registryCapacity = 64

const handlePrefix = "stored-error:"

// Registry stores full error messages behind opaque handles so that long or
// multi-line diagnostics survive the trip through single-line error values.
// One registry belongs to one session; it is mutex-guarded regardless since
// guards and deferred cleanups may touch it during unwinding.
type Registry struct {
	mu    sync.Mutex
	msgs  map[string]string
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{msgs: make(map[string]string)}
}

// Set stores message and returns a fresh opaque handle for it.
func (r *Registry) Set(message string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := fmt.Sprintf("%s%s", handlePrefix, uuid.NewString())
	if len(r.order) >= registryCapacity {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.msgs, oldest)
	}
	r.msgs[handle] = message
	r.order = append(r.order, handle)
	return handle
}

// Get retrieves the message stored under handle, removing it when clear is
// set. An unknown handle returns the handle text itself so a diagnostic is
// never silently lost, merely unresolved.
func (r *Registry) Get(handle string, clear bool) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg, ok := r.msgs[handle]
	if !ok {
		return handle
	}
	if clear {
		delete(r.msgs, handle)
		for i, h := range r.order {
			if h == handle {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	return msg
}

// Len reports the number of stored messages.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

// IsHandle reports whether s looks like a registry handle.
func IsHandle(s string) bool {
	return len(s) > len(handlePrefix) && s[:len(handlePrefix)] == handlePrefix
}
