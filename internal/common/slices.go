package common

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Chunk splits s into at most n contiguous sub-slices of near-equal size.
// The sub-slices alias s. Returns nil for an empty slice.
func Chunk[S ~[]E, E any](s S, n int) []S {
	if len(s) == 0 {
		return nil
	}

	if n <= 1 {
		return []S{s}
	}

	n = min(n, len(s))
	size := (len(s) + n - 1) / n

	chunks := make([]S, 0, n)
	for start := 0; start < len(s); start += size {
		end := min(start+size, len(s))
		chunks = append(chunks, s[start:end:end])
	}

	return chunks
}
