package registry

import "sync"

// Registry is a thread-safe key-value store with per-key locking. Extension
// points (cmd, cron, api) register into it during init and lock the key once
// applied, making the registered set immutable for the rest of the process.
type Registry struct {
	mu     sync.RWMutex
	values map[string]any
	locked map[string]bool
}

// GlobalRegistry is the process-wide registry backing the extension points.
var GlobalRegistry = New()

func New() *Registry {
	return &Registry{
		values: make(map[string]any),
		locked: make(map[string]bool),
	}
}

func (r *Registry) GetGlobal(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// SetGlobal stores a value. Panics if the key is locked.
func (r *Registry) SetGlobal(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked[key] {
		panic("registry: key locked: " + key)
	}
	r.values[key] = value
}

// Lock makes a key immutable.
func (r *Registry) Lock(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked[key] = true
}

func (r *Registry) IsLocked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked[key]
}

// UnlockForTesting reopens a locked key. Tests only.
func (r *Registry) UnlockForTesting(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked[key] = false
}
