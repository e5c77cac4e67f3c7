package glcontext

import (
	"fmt"
	"sync"

	"github.com/fosdem/glcontext/lib/metrics"
)

// ContextID is unique among all currently live contexts. Once a context is
// destroyed its ID may be handed out again.
type ContextID uint64

func (id ContextID) String() string {
	return fmt.Sprintf("ctx#%d", uint64(id))
}

// Registry mints context IDs. Create one per process (or per subsystem) and
// pass it to every path that creates contexts.
type Registry struct {
	mu   sync.Mutex
	next ContextID
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Allocate returns an ID distinct from every ID this registry handed out
// before. IDs increase monotonically.
func (r *Registry) Allocate() ContextID {
	r.mu.Lock()
	id := r.next
	r.next++
	r.mu.Unlock()

	metrics.IDsAllocated.Inc()
	return id
}
