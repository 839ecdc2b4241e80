package lattice

import (
	"fmt"
	"sort"
)

// bindingKind selects how a binding reacts to its event.
type bindingKind uint8

const (
	bindHandler     bindingKind = iota // declared event handler; pointer events pre-filtered
	bindPointerDown                    // ReactiveState.OnPointerDown, pre-filtered
	bindHover                          // enter/leave tracking on pointer move, never filtered
)

// Binding pairs a listener with the visual that owns it and the layer that
// registered it.
type Binding struct {
	Listener Listener
	Owner    *Visual
	Layer    LayerID
	kind     bindingKind
}

// Registry maps event names to layer-scoped listener buckets. Every bucket
// carries exactly Depth sealed buckets, one per pushed layer, so a Pop always
// removes exactly the listeners of the most recent layer across every event
// name.
type Registry struct {
	buckets map[string]*BucketStack[Binding]
	depth   int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{buckets: make(map[string]*BucketStack[Binding])}
}

// Add appends a binding to the unsealed bucket of name.
func (r *Registry) Add(name string, b Binding) {
	bucket, ok := r.buckets[name]
	if !ok {
		bucket = &BucketStack[Binding]{}
		// Earlier layers registered nothing under this name.
		for i := 0; i < r.depth; i++ {
			bucket.Seal()
		}
		r.buckets[name] = bucket
	}
	bucket.Push(b)
}

// Seal closes the current layer's bucket for every event name.
func (r *Registry) Seal() {
	for _, bucket := range r.buckets {
		bucket.Seal()
	}
	r.depth++
}

// Discard drops bindings added since the last Seal without touching any
// sealed bucket. Used to roll back a failed push.
func (r *Registry) Discard() {
	for name, bucket := range r.buckets {
		bucket.Discard()
		if bucket.Sealed() == 0 {
			delete(r.buckets, name)
		}
	}
}

// Pop removes the most recently sealed layer's bindings from every bucket.
func (r *Registry) Pop() error {
	if r.depth == 0 {
		return fmt.Errorf("lattice: pop listeners: no sealed layer: %w", ErrIllegalState)
	}
	for name, bucket := range r.buckets {
		if err := bucket.Pop(); err != nil {
			return fmt.Errorf("lattice: pop listeners %q: %w", name, err)
		}
	}
	r.depth--
	return nil
}

// Depth returns the number of sealed layers.
func (r *Registry) Depth() int { return r.depth }

// Count returns the number of live bindings for name.
func (r *Registry) Count(name string) int {
	if bucket, ok := r.buckets[name]; ok {
		return bucket.Len()
	}
	return 0
}

// Names returns the event names that have a bucket, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.buckets))
	for name := range r.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the live bindings for name, most recently
// registered first. The second result is false when name has no bucket.
func (r *Registry) Snapshot(name string, buf []Binding) ([]Binding, bool) {
	bucket, ok := r.buckets[name]
	if !ok {
		return buf[:0], false
	}
	items := bucket.Items()
	buf = buf[:0]
	for i := len(items) - 1; i >= 0; i-- {
		buf = append(buf, items[i])
	}
	return buf, true
}
