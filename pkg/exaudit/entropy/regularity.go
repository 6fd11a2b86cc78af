package entropy

import "strconv"

// intervalPrecision is the number of significant digits used to decide that
// two intervals are equal.
const intervalPrecision = 10

// Regularity describes how arithmetic a sequence is.
type Regularity struct {
	// MostCommonIntervalSize is the most frequent difference between
	// consecutive values.
	MostCommonIntervalSize float64 `json:"most_common_interval_size"`
	// MostCommonIntervalSizePercentage is the share of intervals equal to
	// MostCommonIntervalSize, in [0, 1].
	MostCommonIntervalSizePercentage float64 `json:"most_common_interval_size_percentage"`
}

// SequenceRegularity measures how much of values is a constant-step series.
// Counters and date runs score close to 1; irregular data close to 0.
// Sequences shorter than two values have no intervals and score 0.
func SequenceRegularity(values []float64) Regularity {
	if len(values) < 2 {
		return Regularity{}
	}

	counts := make(map[string]int, len(values)-1)
	sizes := make(map[string]float64, len(values)-1)
	var order []string
	for i := 1; i < len(values); i++ {
		interval := values[i] - values[i-1]
		if interval == 0 {
			interval = 0 // fold -0
		}
		key := strconv.FormatFloat(interval, 'g', intervalPrecision, 64)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			sizes[key] = interval
		}
		counts[key]++
	}

	// First-seen interval wins ties.
	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}

	return Regularity{
		MostCommonIntervalSize:           sizes[best],
		MostCommonIntervalSizePercentage: float64(counts[best]) / float64(len(values)-1),
	}
}
