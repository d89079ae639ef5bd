package block

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// ErrChannels is returned when more channels are passed than there are
// lanes.
var ErrChannels = errors.New("channel count exceeds lane width")

// ErrOffset is returned for a negative frame offset.
var ErrOffset = errors.New("frame offset must be >= 0")

// Deinterleave copies frames starting at offset from planar channels into
// dst, channel c landing in lane c. Lanes without a channel are zeroed.
// It returns the number of frames written, bounded by len(dst) and the
// shortest channel.
func Deinterleave[T lane.Float](dst []lane.Vec[T], channels [][]float64, offset int) (int, error) {
	n, err := frames(len(dst), channels, offset)
	if err != nil {
		return 0, err
	}

	for i := range dst[:n] {
		var v lane.Vec[T]
		for c, ch := range channels {
			v[c] = T(ch[offset+i])
		}

		dst[i] = v
	}

	return n, nil
}

// Scatter is the inverse of Deinterleave: lane c of src is written to
// channels[c] starting at offset. Lanes without a channel are dropped.
func Scatter[T lane.Float](channels [][]float64, src []lane.Vec[T], offset int) (int, error) {
	n, err := frames(len(src), channels, offset)
	if err != nil {
		return 0, err
	}

	for i, v := range src[:n] {
		for c, ch := range channels {
			ch[offset+i] = float64(v[c])
		}
	}

	return n, nil
}

func frames(n int, channels [][]float64, offset int) (int, error) {
	if len(channels) > lane.Width {
		return 0, fmt.Errorf("block: %w: %d > %d", ErrChannels, len(channels), lane.Width)
	}

	if offset < 0 {
		return 0, fmt.Errorf("block: %w: %d", ErrOffset, offset)
	}

	for _, ch := range channels {
		n = min(n, max(len(ch)-offset, 0))
	}

	return n, nil
}
