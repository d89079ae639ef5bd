// Package block bridges host buffers and lane vectors.
//
// Hosts usually hand over planar []float64 channels. Deinterleave packs
// one sample per channel into each lane vector, so a single lane-parallel
// filter processes up to lane.Width channels at once; Scatter writes the
// result back. Gain and Mix operate on the planar buffers directly.
package block
