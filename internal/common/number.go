package common

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T unsigned](low T, value T, high T) bool {
	return low <= value && value <= high
}

// CheckedAdd returns a+b and false if the sum wraps around.
func CheckedAdd[T unsigned](a, b T) (T, bool) {
	sum := a + b
	return sum, sum >= a
}
