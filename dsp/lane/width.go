//go:build !lanes4 && !lanes16

package lane

// Width is the number of lanes in a Vec. Build with the lanes4 or lanes16
// tag to change it.
const Width = 8
