package fixed

import (
	"testing"
)

func TestFixedRing_AddAndGet(t *testing.T) {
	r := NewRing(3)

	r.Add(FromInt(1, 0))
	r.Add(FromInt(2, 0))
	r.Add(FromInt(3, 0))

	if !r.Get(0).Eq(FromInt(3, 0)) {
		t.Errorf("Expected latest 3, got %v", r.Get(0))
	}
	if !r.Oldest().Eq(FromInt(1, 0)) {
		t.Errorf("Expected oldest 1, got %v", r.Oldest())
	}
}

func TestFixedRing_Overwrite(t *testing.T) {
	r := NewRing(3)

	for i := 1; i <= 5; i++ {
		r.Add(FromInt(i, 0))
	}

	if !r.IsFull() {
		t.Error("Expected full buffer")
	}
	if !r.Latest().Eq(FromInt(5, 0)) {
		t.Errorf("Expected latest 5, got %v", r.Latest())
	}
	if !r.Oldest().Eq(FromInt(3, 0)) {
		t.Errorf("Expected oldest 3, got %v", r.Oldest())
	}
}

func TestFixedRing_MinMax(t *testing.T) {
	r := NewRing(4)

	r.Add(FromInt(7, 0))
	r.Add(FromInt(2, 0))
	r.Add(FromInt(9, 0))
	r.Add(FromInt(4, 0))

	if !r.Min().Eq(FromInt(2, 0)) {
		t.Errorf("Expected min 2, got %v", r.Min())
	}
	if !r.Max().Eq(FromInt(9, 0)) {
		t.Errorf("Expected max 9, got %v", r.Max())
	}
}

func TestFixedRing_MinMaxAfterOverwrite(t *testing.T) {
	r := NewRing(2)

	r.Add(FromInt(9, 0))
	r.Add(FromInt(2, 0))
	r.Add(FromInt(4, 0))

	if !r.Max().Eq(FromInt(4, 0)) {
		t.Errorf("Expected max 4 once 9 is evicted, got %v", r.Max())
	}
}

func TestFixedRing_Clear(t *testing.T) {
	r := NewRing(2)
	r.Add(FromInt(1, 0))

	r.Clear()

	if !r.IsEmpty() {
		t.Error("Expected empty buffer after clear")
	}
}

func TestFixedRing_GetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic")
		}
	}()

	r := NewRing(2)
	r.Add(FromInt(1, 0))
	r.Get(1)
}
