package common

// Coalesce returns the first argument that is not the zero value of T, or the zero value when
// every argument is zero. Option structs use it to fill unset fields with defaults.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
