package fixed

import "fmt"

// Ring is a fixed-capacity ring of points. Index 0 addresses the most
// recently added point.
type Ring struct {
	buffer   []Point
	capacity int
	size     int
	tail     int
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		panic("capacity must be positive")
	}
	return &Ring{
		buffer:   make([]Point, capacity),
		capacity: capacity,
	}
}

func (r *Ring) Size() int {
	return r.size
}

func (r *Ring) Capacity() int {
	return r.capacity
}

func (r *Ring) IsEmpty() bool {
	return r.size == 0
}

func (r *Ring) IsFull() bool {
	return r.size == r.capacity
}

func (r *Ring) Clear() {
	r.size = 0
	r.tail = 0
}

func (r *Ring) Add(p Point) {
	r.buffer[r.tail] = p
	r.tail = (r.tail + 1) % r.capacity

	if r.size < r.capacity {
		r.size++
	}
}

func (r *Ring) Get(idx int) Point {
	if idx < 0 || idx >= r.size {
		panic(fmt.Sprintf("index %d out of range [0, %d)", idx, r.size))
	}

	actualIdx := (r.tail - 1 - idx + r.capacity) % r.capacity
	return r.buffer[actualIdx]
}

func (r *Ring) Latest() Point {
	if r.size == 0 {
		panic("buffer is empty")
	}
	return r.Get(0)
}

func (r *Ring) Oldest() Point {
	if r.size == 0 {
		panic("buffer is empty")
	}
	return r.Get(r.size - 1)
}

func (r *Ring) Min() Point {
	if r.size == 0 {
		panic("buffer is empty")
	}

	minVal := r.Get(0)
	for i := 1; i < r.size; i++ {
		val := r.Get(i)
		if val.Lt(minVal) {
			minVal = val
		}
	}
	return minVal
}

func (r *Ring) Max() Point {
	if r.size == 0 {
		panic("buffer is empty")
	}

	maxVal := r.Get(0)
	for i := 1; i < r.size; i++ {
		val := r.Get(i)
		if val.Gt(maxVal) {
			maxVal = val
		}
	}
	return maxVal
}
