package ptr

// Ptr returns a pointer to v. Useful for literals and loop variables.
func Ptr[T any](v T) *T {
	return &v
}
