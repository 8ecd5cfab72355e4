package analysis

// Outcome is the result of one external call made by the pipeline: either the
// provider's value, or a documented default together with the reason the
// provider's value could not be used.
type Outcome[T any] struct {
	value    T
	fellBack bool
	reason   string
}

// Succeeded wraps a value obtained from a provider.
func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// FellBack wraps a default value used in place of a provider response.
func FellBack[T any](v T, reason string) Outcome[T] {
	return Outcome[T]{value: v, fellBack: true, reason: reason}
}

// Value returns the provider value or the default.
func (o Outcome[T]) Value() T { return o.value }

// IsFallback reports whether the default was used.
func (o Outcome[T]) IsFallback() bool { return o.fellBack }

// Reason explains why the default was used. Empty on success.
func (o Outcome[T]) Reason() string { return o.reason }
