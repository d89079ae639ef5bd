package biquad

import "math"

// DefaultQ is the Butterworth quality factor, used when a design gets a
// non-positive or non-finite Q.
const DefaultQ = 1 / math.Sqrt2

// The designs below follow the RBJ audio EQ cookbook. Frequencies are in
// Hz and must lie strictly between 0 and Nyquist; otherwise the zero
// Coefficients (silence) are returned.

// Lowpass designs a second-order lowpass with quality factor q.
func Lowpass(freq, q, sampleRate float64) Coefficients {
	return design(freq, q, sampleRate, func(cw, sw, alpha float64) [6]float64 {
		return [6]float64{(1 - cw) / 2, 1 - cw, (1 - cw) / 2, 1 + alpha, -2 * cw, 1 - alpha}
	})
}

// Highpass designs a second-order highpass with quality factor q.
func Highpass(freq, q, sampleRate float64) Coefficients {
	return design(freq, q, sampleRate, func(cw, sw, alpha float64) [6]float64 {
		return [6]float64{(1 + cw) / 2, -(1 + cw), (1 + cw) / 2, 1 + alpha, -2 * cw, 1 - alpha}
	})
}

// Bandpass designs a constant-skirt bandpass whose peak gain is q.
func Bandpass(freq, q, sampleRate float64) Coefficients {
	return design(freq, q, sampleRate, func(cw, sw, alpha float64) [6]float64 {
		return [6]float64{sw / 2, 0, -sw / 2, 1 + alpha, -2 * cw, 1 - alpha}
	})
}

// BandpassPeak designs a bandpass with 0 dB gain at its center.
func BandpassPeak(freq, q, sampleRate float64) Coefficients {
	return design(freq, q, sampleRate, func(cw, sw, alpha float64) [6]float64 {
		return [6]float64{alpha, 0, -alpha, 1 + alpha, -2 * cw, 1 - alpha}
	})
}

// Notch designs a band-reject filter centered at freq.
func Notch(freq, q, sampleRate float64) Coefficients {
	return design(freq, q, sampleRate, func(cw, sw, alpha float64) [6]float64 {
		return [6]float64{1, -2 * cw, 1, 1 + alpha, -2 * cw, 1 - alpha}
	})
}

// Allpass designs a second-order allpass centered at freq.
func Allpass(freq, q, sampleRate float64) Coefficients {
	return design(freq, q, sampleRate, func(cw, sw, alpha float64) [6]float64 {
		return [6]float64{1 - alpha, -2 * cw, 1 + alpha, 1 + alpha, -2 * cw, 1 - alpha}
	})
}

// Peak designs a peaking EQ with gainDB at freq.
func Peak(freq, gainDB, q, sampleRate float64) Coefficients {
	a := math.Pow(10, gainDB/40)

	return design(freq, q, sampleRate, func(cw, sw, alpha float64) [6]float64 {
		return [6]float64{1 + alpha*a, -2 * cw, 1 - alpha*a, 1 + alpha/a, -2 * cw, 1 - alpha/a}
	})
}

// LowShelf designs a low shelf with gainDB below freq.
func LowShelf(freq, gainDB, q, sampleRate float64) Coefficients {
	a := math.Pow(10, gainDB/40)

	return design(freq, q, sampleRate, func(cw, sw, alpha float64) [6]float64 {
		beta := 2 * math.Sqrt(a) * alpha

		return [6]float64{
			a * ((a + 1) - (a-1)*cw + beta),
			2 * a * ((a - 1) - (a+1)*cw),
			a * ((a + 1) - (a-1)*cw - beta),
			(a + 1) + (a-1)*cw + beta,
			-2 * ((a - 1) + (a+1)*cw),
			(a + 1) + (a-1)*cw - beta,
		}
	})
}

// HighShelf designs a high shelf with gainDB above freq.
func HighShelf(freq, gainDB, q, sampleRate float64) Coefficients {
	a := math.Pow(10, gainDB/40)

	return design(freq, q, sampleRate, func(cw, sw, alpha float64) [6]float64 {
		beta := 2 * math.Sqrt(a) * alpha

		return [6]float64{
			a * ((a + 1) + (a-1)*cw + beta),
			-2 * a * ((a - 1) + (a+1)*cw),
			a * ((a + 1) + (a-1)*cw - beta),
			(a + 1) - (a-1)*cw + beta,
			2 * ((a - 1) - (a+1)*cw),
			(a + 1) - (a-1)*cw - beta,
		}
	})
}

// design evaluates a cookbook row {b0, b1, b2, a0, a1, a2} and normalizes
// it by a0.
func design(freq, q, sampleRate float64, row func(cw, sw, alpha float64) [6]float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	if !(q > 0) || math.IsInf(q, 0) {
		q = DefaultQ
	}

	sw, cw := math.Sincos(w0)
	r := row(cw, sw, sw/(2*q))

	a0 := r[3]
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{}
	}

	return Coefficients{B0: r[0] / a0, B1: r[1] / a0, B2: r[2] / a0, A1: r[4] / a0, A2: r[5] / a0}
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	if !(freq > 0 && freq < sampleRate/2) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}
