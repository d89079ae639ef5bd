package cpu

import (
	"runtime"
	"testing"
)

func TestDetectReportsArchitecture(t *testing.T) {
	f := Detect()
	if f.Architecture != runtime.GOARCH {
		t.Fatalf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}

	if runtime.GOARCH == "amd64" && !f.HasSSE2 {
		t.Fatal("amd64 without SSE2")
	}
}

func TestBestAndLanes(t *testing.T) {
	tests := []struct {
		name    string
		f       Features
		best    Level
		lanes32 int
		lanes64 int
	}{
		{"generic", Features{}, LevelNone, 1, 1},
		{"sse2", Features{HasSSE2: true}, LevelSSE2, 4, 2},
		{"avx2", Features{HasSSE2: true, HasAVX: true, HasAVX2: true}, LevelAVX2, 8, 4},
		{"avx512", Features{HasSSE2: true, HasAVX2: true, HasAVX512: true}, LevelAVX512, 16, 8},
		{"neon", Features{HasNEON: true}, LevelNEON, 4, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.Best(); got != tc.best {
				t.Fatalf("Best() = %v, want %v", got, tc.best)
			}

			if got := tc.f.Lanes(4); got != tc.lanes32 {
				t.Fatalf("Lanes(4) = %d, want %d", got, tc.lanes32)
			}

			if got := tc.f.Lanes(8); got != tc.lanes64 {
				t.Fatalf("Lanes(8) = %d, want %d", got, tc.lanes64)
			}
		})
	}
}

func TestFeaturesString(t *testing.T) {
	if got := (Features{}).String(); got != "none" {
		t.Fatalf("String() = %q, want none", got)
	}

	if got := (Features{HasSSE2: true, HasAVX2: true}).String(); got != "SSE2 AVX2" {
		t.Fatalf("String() = %q, want %q", got, "SSE2 AVX2")
	}

	if got := Level(99).String(); got != "unknown" {
		t.Fatalf("Level(99).String() = %q", got)
	}
}

func TestSetForced(t *testing.T) {
	defer ResetForced()

	SetForced(Features{HasNEON: true, Architecture: "test"})

	if f := Detect(); f.Architecture != "test" || f.Best() != LevelNEON {
		t.Fatalf("Detect() = %+v, want forced features", f)
	}

	ResetForced()

	if f := Detect(); f.Architecture != runtime.GOARCH {
		t.Fatalf("after ResetForced: Architecture = %q", f.Architecture)
	}
}
