package entropy

import "math"

// Score maps a signature to a ranking value. It is strictly increasing in the
// signature and Score(0) == 0.
func Score(s Signature) float64 {
	return math.Log10(float64(s) + 1)
}

// ValueScore is Score(NumberSignature(v)).
func ValueScore(v float64) (float64, error) {
	sig, err := NumberSignature(v)
	if err != nil {
		return 0, err
	}
	return Score(sig), nil
}

// SequenceScore sums the scores of values, so it grows with both the number
// of values and the entropy of each.
func SequenceScore(values []float64) (float64, error) {
	total := 0.0
	for _, v := range values {
		s, err := ValueScore(v)
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}
