// Package biquad provides second-order IIR sections.
//
// [Coefficients] describe one section with a0 normalized to 1. The scalar
// [Section] is the reference and analysis tool. [Lanes] runs one
// independent section per lane of a [lane.Vec], and [Cascade] chains
// lane sections for higher orders. RBJ cookbook designs cover the usual
// responses.
//
// The state-variable filters in dsp/filter/svf report their equivalent
// coefficients in this form, so their responses can be inspected with
// [Coefficients.Response] and friends.
package biquad
