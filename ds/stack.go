package ds

// Stack keeps values in push order. The item list decoder uses it to find
// the host of a socketed record, which is always the last pushed item.
type Stack[T any] struct {
	slice []T
}

func NewStack[T any](capacity int) *Stack[T] {
	return &Stack[T]{
		slice: make([]T, 0, capacity),
	}
}

func (r *Stack[T]) Len() int {
	return len(r.slice)
}

func (r *Stack[T]) Push(t T) T {
	r.slice = append(r.slice, t)
	return t
}

// Peek returns the last pushed value; ok is false on an empty stack.
func (r *Stack[T]) Peek() (t T, ok bool) {
	if r.Len() == 0 {
		return t, false
	}
	return r.slice[r.Len()-1], true
}

// Slice returns the values in push order. The stack must not be used after.
func (r *Stack[T]) Slice() []T {
	return r.slice
}
