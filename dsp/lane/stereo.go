package lane

// StereoSlots is the number of left/right pairs packed in a Vec. Lane 2i
// carries the left channel of slot i and lane 2i+1 the right channel.
const StereoSlots = Width / 2

// SplatStereo fills every even lane with l and every odd lane with r.
func SplatStereo[T Float](l, r T) Vec[T] {
	var v Vec[T]
	for i := 0; i < Width; i += 2 {
		v[i] = l
		v[i+1] = r
	}

	return v
}

// SwapStereo exchanges the left and right lanes of every slot.
func SwapStereo[T Float](v Vec[T]) Vec[T] {
	return SwapAdjacent(v)
}

// Slot returns the left and right samples of stereo slot i.
// It panics if i is not in [0, StereoSlots).
func Slot[T Float](v Vec[T], i int) (l, r T) {
	return v[2*i], v[2*i+1]
}

// SplatSlot broadcasts stereo slot i to every slot. ok is false when i
// is out of range.
func SplatSlot[T Float](v Vec[T], i int) (Vec[T], bool) {
	if i < 0 || i >= StereoSlots {
		return Vec[T]{}, false
	}

	return SplatStereo(Slot(v, i)), true
}

// SumToStereo mixes all slots down to a single left/right pair.
func SumToStereo[T Float](v Vec[T]) (l, r T) {
	for n := Width / 2; n >= 2; n /= 2 {
		for i := range n {
			v[i] += v[i+n]
		}
	}

	return v[0], v[1]
}

// TriangularPanWeights maps a normalized pan position in [0, 1] to
// per-slot gains: 1-pan on the left lane and pan on the right lane.
func TriangularPanWeights[T Float](pan Vec[T]) Vec[T] {
	for i := 0; i < Width; i += 2 {
		pan[i] = 1 - pan[i]
	}

	return pan
}
