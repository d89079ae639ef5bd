package core

// EnsureLen returns buf resliced to n elements, allocating only when its
// capacity is too small. Contents are not cleared. Block helpers use it to
// keep their scratch buffers allocation-free after the first call.
func EnsureLen[T ~float32 | ~float64](buf []T, n int) []T {
	n = max(n, 0)
	if cap(buf) < n {
		return make([]T, n)
	}

	return buf[:n]
}
