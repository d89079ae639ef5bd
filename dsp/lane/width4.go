//go:build lanes4 && !lanes16

package lane

// Width is the number of lanes in a Vec.
const Width = 4
