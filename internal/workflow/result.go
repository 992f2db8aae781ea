package workflow

// Result carries the outcome of a best-effort step whose failure is dropped
// by the caller instead of being returned.
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Value returns the value and true when the step succeeded.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.err == nil
}

func (r Result[T]) Err() error {
	return r.err
}
