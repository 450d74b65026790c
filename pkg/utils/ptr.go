package utils

// Ptr returns a pointer to a copy of v, for filling optional fields
func Ptr[T any](v T) *T {
	return &v
}
