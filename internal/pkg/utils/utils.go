// Package utils holds small generic helpers shared across packages.
package utils

// Ptr returns a pointer to v; handy for literals in tests and updates.
func Ptr[T any](v T) *T {
	return &v
}
