//go:build lanes16

package lane

// Width is the number of lanes in a Vec.
const Width = 16
