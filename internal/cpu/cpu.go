// Package cpu reports the vector extensions of the host processor.
//
// The lane types are plain Go arrays that the compiler may or may not
// vectorize, so the report is informational: dspinfo and the benchmarks
// use it to relate lane.Width to the native register width.
package cpu

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Level is the widest vector extension available.
type Level int

const (
	LevelNone Level = iota
	LevelSSE2
	LevelAVX
	LevelAVX2
	LevelAVX512
	LevelNEON
)

var levelNames = [...]string{
	LevelNone:   "none",
	LevelSSE2:   "SSE2",
	LevelAVX:    "AVX",
	LevelAVX2:   "AVX2",
	LevelAVX512: "AVX-512",
	LevelNEON:   "NEON",
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}

	return levelNames[l]
}

// RegisterBits is the vector register width of the level, 0 for none.
func (l Level) RegisterBits() int {
	switch l {
	case LevelSSE2, LevelNEON:
		return 128
	case LevelAVX, LevelAVX2:
		return 256
	case LevelAVX512:
		return 512
	default:
		return 0
	}
}

// Features describes the vector capabilities of a processor.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	// Architecture is runtime.GOARCH.
	Architecture string
}

// Best returns the widest level the features support.
func (f Features) Best() Level {
	switch {
	case f.HasAVX512:
		return LevelAVX512
	case f.HasAVX2:
		return LevelAVX2
	case f.HasAVX:
		return LevelAVX
	case f.HasSSE2:
		return LevelSSE2
	case f.HasNEON:
		return LevelNEON
	default:
		return LevelNone
	}
}

// Lanes returns how many elements of elemBytes fit one register of the
// best level, at least 1.
func (f Features) Lanes(elemBytes int) int {
	if elemBytes <= 0 {
		return 1
	}

	return max(f.Best().RegisterBits()/8/elemBytes, 1)
}

// String lists the present extensions, or "none".
func (f Features) String() string {
	var names []string

	for _, e := range []struct {
		ok    bool
		level Level
	}{
		{f.HasSSE2, LevelSSE2},
		{f.HasAVX, LevelAVX},
		{f.HasAVX2, LevelAVX2},
		{f.HasAVX512, LevelAVX512},
		{f.HasNEON, LevelNEON},
	} {
		if e.ok {
			names = append(names, e.level.String())
		}
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, " ")
}

var (
	detected = sync.OnceValue(detectFeatures)
	forced   atomic.Pointer[Features]
)

// Detect returns the features of the running processor. Detection runs
// once and is safe for concurrent use.
func Detect() Features {
	if f := forced.Load(); f != nil {
		return *f
	}

	return detected()
}

// SetForced makes Detect return f until ResetForced. Intended for tests.
func SetForced(f Features) {
	forced.Store(&f)
}

// ResetForced restores hardware detection.
func ResetForced() {
	forced.Store(nil)
}
