package models

// Result holds either a value or the error that prevented producing it
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the result carries a value rather than a failure.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Success wraps a value in a successful Result.
func Success[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Failure wraps err in a failed Result.
func Failure[T any](err error) Result[T] {
	return Result[T]{Err: err}
}
