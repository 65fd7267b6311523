package containers_test

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/polymesh/engine/containers"
	"golang.org/x/exp/slices"
)

func TestRingQueue(t *testing.T) {
	q := containers.NewRingQueue[int](2)
	if !q.IsEmpty() {
		t.Fatal("new queue should be empty")
	}
	if err := q.Enqueue(1); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue(2); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue(3); !errors.Is(err, containers.ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
	v, err := q.Dequeue()
	if err != nil || v != 1 {
		t.Errorf("Dequeue = %d, %v; want 1, nil", v, err)
	}
	if p, _ := q.Peek(); p != 2 {
		t.Errorf("Peek = %d, want 2", p)
	}
}

func TestRingQueuePushDropsOldest(t *testing.T) {
	q := containers.NewRingQueue[int](3)
	for i := 1; i <= 5; i++ {
		q.Push(i)
	}
	var got []int
	q.Each(func(v int) { got = append(got, v) })
	if !slices.Equal(got, []int{3, 4, 5}) {
		t.Errorf("queue contents = %v, want [3 4 5]", got)
	}
	if q.Len() != 3 {
		t.Errorf("Len = %d, want 3", q.Len())
	}
}

func TestSet(t *testing.T) {
	s := containers.NewSet(3, 1)
	if !s.Add(2) {
		t.Error("Add(2) should report insertion")
	}
	if s.Add(3) {
		t.Error("Add(3) should report duplicate")
	}
	if !s.Contains(1) || s.Contains(4) {
		t.Error("Contains mismatch")
	}
	s.Remove(1)
	if got := containers.Sorted(s); !slices.Equal(got, []int{2, 3}) {
		t.Errorf("Sorted = %v, want [2 3]", got)
	}
}
