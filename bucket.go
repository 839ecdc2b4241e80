package lattice

import "fmt"

// BucketStack is an append-only stack of items grouped into sealed buckets.
// Seal closes the bucket of items pushed since the previous seal; Pop
// discards the most recently sealed bucket together with any items pushed
// after it. The zero value is ready to use.
type BucketStack[T any] struct {
	items      []T
	boundaries []int // start index of each sealed bucket
	open       int   // start index of the unsealed tail
}

// Push appends an item to the unsealed tail.
func (b *BucketStack[T]) Push(item T) {
	b.items = append(b.items, item)
}

// Seal closes the current bucket. Items pushed afterwards belong to the next
// bucket. Sealing with nothing pushed creates an empty bucket.
func (b *BucketStack[T]) Seal() {
	b.boundaries = append(b.boundaries, b.open)
	b.open = len(b.items)
}

// Pop discards the last sealed bucket and the unsealed tail.
func (b *BucketStack[T]) Pop() error {
	n := len(b.boundaries)
	if n == 0 {
		return fmt.Errorf("lattice: pop bucket: no sealed buckets: %w", ErrIllegalState)
	}
	b.open = b.boundaries[n-1]
	b.boundaries = b.boundaries[:n-1]
	// Clear the discarded tail so popped listeners can be collected.
	b.Discard()
	return nil
}

// Discard drops the unsealed tail, leaving every sealed bucket intact.
func (b *BucketStack[T]) Discard() {
	var zero T
	for i := b.open; i < len(b.items); i++ {
		b.items[i] = zero
	}
	b.items = b.items[:b.open]
}

// Len returns the number of live items.
func (b *BucketStack[T]) Len() int { return len(b.items) }

// Sealed returns the number of sealed buckets.
func (b *BucketStack[T]) Sealed() int { return len(b.boundaries) }

// Items returns the live items in push order. The returned slice MUST NOT be
// mutated or retained across a Push or Pop.
func (b *BucketStack[T]) Items() []T { return b.items }
