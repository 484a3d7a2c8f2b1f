// Package options provides the generic functional-option plumbing shared by
// constructors across the module.
package options

// Option configures a value of type T during construction.
type Option[T any] interface {
	apply(*T) error
}

type optionFunc[T any] func(*T) error

func (f optionFunc[T]) apply(target *T) error {
	return f(target)
}

// New wraps a fallible configuration function as an Option.
func New[T any](fn func(*T) error) Option[T] {
	return optionFunc[T](fn)
}

// NoError wraps an infallible configuration function as an Option.
func NoError[T any](fn func(*T)) Option[T] {
	return optionFunc[T](func(target *T) error {
		fn(target)
		return nil
	})
}

// Apply runs the options against target in order, stopping at the first
// error.
func Apply[T any](target *T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
