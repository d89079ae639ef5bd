package lane

const half = Width / 2

// Interleave zips a and b lane by lane. lo holds a0 b0 a1 b1 ... from the
// lower halves, hi the same pattern from the upper halves.
func Interleave[T Float](a, b Vec[T]) (lo, hi Vec[T]) {
	for i := range half {
		lo[2*i] = a[i]
		lo[2*i+1] = b[i]
		hi[2*i] = a[half+i]
		hi[2*i+1] = b[half+i]
	}

	return lo, hi
}

// Deinterleave is the inverse of Interleave.
func Deinterleave[T Float](lo, hi Vec[T]) (a, b Vec[T]) {
	for i := range half {
		a[i] = lo[2*i]
		b[i] = lo[2*i+1]
		a[half+i] = hi[2*i]
		b[half+i] = hi[2*i+1]
	}

	return a, b
}

// Reverse returns v with lane order reversed.
func Reverse[T Float](v Vec[T]) Vec[T] {
	var out Vec[T]
	for i := range v {
		out[i] = v[Width-1-i]
	}

	return out
}

// SwapAdjacent exchanges every even lane with its odd neighbour.
func SwapAdjacent[T Float](v Vec[T]) Vec[T] {
	var out Vec[T]
	for i := range v {
		out[i] = v[i^1]
	}

	return out
}

// DupEven copies every even lane into the odd lane above it.
func DupEven[T Float](v Vec[T]) Vec[T] {
	var out Vec[T]
	for i := range v {
		out[i] = v[i&^1]
	}

	return out
}

// DupOdd copies every odd lane into the even lane below it.
func DupOdd[T Float](v Vec[T]) Vec[T] {
	var out Vec[T]
	for i := range v {
		out[i] = v[i|1]
	}

	return out
}

// OddEven takes odd lanes from odd and even lanes from even.
func OddEven[T Float](odd, even Vec[T]) Vec[T] {
	out := even
	for i := 1; i < Width; i += 2 {
		out[i] = odd[i]
	}

	return out
}

// Rotate moves every lane n positions toward lane 0, wrapping around.
// Negative n rotates the other way.
func Rotate[T Float](v Vec[T], n int) Vec[T] {
	n %= Width
	if n < 0 {
		n += Width
	}

	var out Vec[T]
	for i := range v {
		out[i] = v[(i+n)%Width]
	}

	return out
}

// Broadcast returns a Vec with every lane set to lane i of v. i wraps
// modulo Width.
func Broadcast[T Float](v Vec[T], i int) Vec[T] {
	return Splat(v[i&(Width-1)])
}

// ConcatLowerUpper returns the lower half of a followed by the upper
// half of b.
func ConcatLowerUpper[T Float](a, b Vec[T]) Vec[T] {
	copy(a[half:], b[half:])

	return a
}

// Transpose treats block as a Width x Width matrix, one Vec per row, and
// transposes it in place. It converts between "lane per voice" and "lane
// per sample" layouts.
func Transpose[T Float](block *[Width]Vec[T]) {
	for r := range Width {
		for c := r + 1; c < Width; c++ {
			block[r][c], block[c][r] = block[c][r], block[r][c]
		}
	}
}
