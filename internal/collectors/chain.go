package collectors

// lookup is one best-effort data source read.
type lookup[T any] func() (T, bool)

// firstOf runs lookups in order and returns the first success.
func firstOf[T any](lookups ...lookup[T]) (T, bool) {
	for _, l := range lookups {
		if v, ok := l(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
