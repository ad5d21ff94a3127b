package core

import (
	"fmt"
	"sync"
)

const defaultRegistryCapacity = 100

// ObjectRegistry hands out small integer handles for live objects. Released
// handles are reused, lowest first.
type ObjectRegistry struct {
	mu     sync.Mutex
	owners []interface{}
	live   int
}

func NewObjectRegistry() *ObjectRegistry {
	return &ObjectRegistry{
		owners: make([]interface{}, defaultRegistryCapacity),
	}
}

func (r *ObjectRegistry) Acquire(owner interface{}) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.live++
	length := uint32(len(r.owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if r.owners[i] == nil {
			r.owners[i] = owner
			return i
		}
	}

	// No free slot left, grow by one. The new id is length.
	r.owners = append(r.owners, owner)
	return length
}

func (r *ObjectRegistry) Release(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	length := uint32(len(r.owners))
	if id >= length {
		return fmt.Errorf("object registry: id '%d' out of range (max=%d): %w", id, length, ErrInvalidObject)
	}
	if r.owners[id] == nil {
		return fmt.Errorf("object registry: id '%d' is not in use: %w", id, ErrObjectDestroyed)
	}

	// Just zero out the entry, making it available for use.
	r.owners[id] = nil
	r.live--
	return nil
}

func (r *ObjectRegistry) Lookup(id uint32) (interface{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id >= uint32(len(r.owners)) || r.owners[id] == nil {
		return nil, false
	}
	return r.owners[id], true
}

// Len returns the number of live handles.
func (r *ObjectRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

// Each calls fn for every live handle in ascending order.
func (r *ObjectRegistry) Each(fn func(id uint32, owner interface{})) {
	r.mu.Lock()
	owners := make([]interface{}, len(r.owners))
	copy(owners, r.owners)
	r.mu.Unlock()

	for i, o := range owners {
		if o != nil {
			fn(uint32(i), o)
		}
	}
}
