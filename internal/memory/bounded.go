package memory

// BoundedLog is a fixed-capacity ordered record trail with FIFO eviction.
// Appends always go to the tail; once the capacity is exceeded the oldest
// entries are dropped until the log is back at capacity. Relative order of
// retained entries is preserved.
type BoundedLog[T any] struct {
	entries  []T
	capacity int
}

// NewBoundedLog creates an empty log holding at most capacity entries.
// A capacity of zero or less means unlimited.
func NewBoundedLog[T any](capacity int) *BoundedLog[T] {
	return &BoundedLog[T]{capacity: capacity}
}

// Append adds a record to the tail, evicting from the head if needed.
func (l *BoundedLog[T]) Append(record T) {
	l.entries = append(l.entries, record)
	if l.capacity > 0 && len(l.entries) > l.capacity {
		overflow := len(l.entries) - l.capacity
		l.entries = append(l.entries[:0], l.entries[overflow:]...)
	}
}

// Len returns the number of retained entries.
func (l *BoundedLog[T]) Len() int { return len(l.entries) }

// Cap returns the configured capacity.
func (l *BoundedLog[T]) Cap() int { return l.capacity }

// All returns a copy of the retained entries, oldest first.
func (l *BoundedLog[T]) All() []T {
	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}

// Last returns up to n of the most recent entries, oldest first.
func (l *BoundedLog[T]) Last(n int) []T {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]T, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
