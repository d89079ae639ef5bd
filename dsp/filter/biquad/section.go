package biquad

// Coefficients is one second-order transfer function with a0 = 1:
//
//	H(z) = (B0 + B1 z⁻¹ + B2 z⁻²) / (1 + A1 z⁻¹ + A2 z⁻²)
//
// Every processor in this package runs it in Direct Form II Transposed.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section is a scalar biquad. It is the reference the lane processors
// are tested against and the analysis helper for single designs.
type Section struct {
	Coefficients

	s1, s2 float64
}

// NewSection returns a zeroed section running c.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters x.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.s1
	s.s1 = s.B1*x - s.A1*y + s.s2
	s.s2 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	c, s1, s2 := s.Coefficients, s.s1, s.s2

	for i, x := range buf {
		y := c.B0*x + s1
		s1 = c.B1*x - c.A1*y + s2
		s2 = c.B2*x - c.A2*y
		buf[i] = y
	}

	s.s1, s.s2 = s1, s2
}

// Reset zeroes the state.
func (s *Section) Reset() { s.s1, s.s2 = 0, 0 }

// State returns the two DF2T state variables.
func (s *Section) State() [2]float64 { return [2]float64{s.s1, s.s2} }

// SetState restores a value returned by State.
func (s *Section) SetState(st [2]float64) { s.s1, s.s2 = st[0], st[1] }
