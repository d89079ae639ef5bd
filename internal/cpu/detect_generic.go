//go:build !amd64 && !arm64

package cpu

import "runtime"

// detectFeatures reports no vector features on other architectures. Lane code
// still runs there on the portable path.
func detectFeatures() Features {
	return Features{Architecture: runtime.GOARCH}
}
