package ports

// VersionComparatorPort orders version strings. Compare returns a negative
// number, zero or a positive number.
type VersionComparatorPort interface {
	Compare(a string, b string) (int, error)
}
