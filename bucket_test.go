package lattice

import (
	"errors"
	"testing"
)

func TestBucketStackSealPop(t *testing.T) {
	var b BucketStack[int]
	b.Push(1)
	b.Push(2)
	b.Seal()
	b.Push(3)
	b.Seal()

	if b.Len() != 3 || b.Sealed() != 2 {
		t.Fatalf("Len=%d Sealed=%d, want 3 and 2", b.Len(), b.Sealed())
	}
	if err := b.Pop(); err != nil {
		t.Fatal(err)
	}
	if got := b.Items(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("after first pop: %v, want [1 2]", got)
	}
	if err := b.Pop(); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 || b.Sealed() != 0 {
		t.Errorf("after second pop: Len=%d Sealed=%d", b.Len(), b.Sealed())
	}
}

func TestBucketStackPopEmpty(t *testing.T) {
	var b BucketStack[string]
	b.Push("unsealed")
	if err := b.Pop(); !errors.Is(err, ErrIllegalState) {
		t.Errorf("Pop err = %v, want ErrIllegalState", err)
	}
	if b.Len() != 1 {
		t.Errorf("failed pop should not discard items, Len = %d", b.Len())
	}
}

func TestBucketStackPopDiscardsUnsealedTail(t *testing.T) {
	var b BucketStack[int]
	b.Push(1)
	b.Seal()
	b.Push(2)
	b.Seal()
	b.Push(3) // unsealed

	if err := b.Pop(); err != nil {
		t.Fatal(err)
	}
	if got := b.Items(); len(got) != 1 || got[0] != 1 {
		t.Errorf("items = %v, want [1]", got)
	}
}

func TestBucketStackEmptyBuckets(t *testing.T) {
	var b BucketStack[int]
	b.Seal()
	b.Push(7)
	b.Seal()
	b.Seal()

	for i, want := range []int{1, 0, 0} {
		if err := b.Pop(); err != nil {
			t.Fatalf("pop %d: %v", i, err)
		}
		if b.Len() != want {
			t.Errorf("pop %d: Len = %d, want %d", i, b.Len(), want)
		}
	}
}

func TestBucketStackDiscard(t *testing.T) {
	var b BucketStack[int]
	b.Push(1)
	b.Seal()
	b.Push(2)
	b.Push(3)
	b.Discard()

	if b.Len() != 1 || b.Sealed() != 1 {
		t.Errorf("Len=%d Sealed=%d, want 1 and 1", b.Len(), b.Sealed())
	}
}

func TestBucketStackPopClearsReferences(t *testing.T) {
	var b BucketStack[*Visual]
	b.Seal()
	b.Push(&Visual{})
	b.Seal()
	backing := b.Items()[:1]
	if err := b.Pop(); err != nil {
		t.Fatal(err)
	}
	if backing[0] != nil {
		t.Error("popped slot should be zeroed")
	}
}
