package inference

import "math"

// Squeeze drops a leading batch dimension of one from a [1,K] output, and
// returns vectors unchanged. Other shapes pass through as flat data.
func Squeeze(scores []float32, shape []int64) []float32 {
	if len(shape) == 2 && shape[0] == 1 {
		return scores[:shape[1]]
	}
	return scores
}

// Probabilities converts raw scores into a probability distribution with a
// numerically stable softmax. When the scores contain non-finite values the
// softmax result is unusable; the raw vector is then treated as already
// proportional to likelihood and normalized by its sum. A zero sum skips
// normalization entirely and the raw values pass through unchanged — a
// permissive degradation, never a division by zero.
func Probabilities(raw []float32) []float32 {
	if len(raw) == 0 {
		return nil
	}

	if probs, ok := softmax(raw); ok {
		return probs
	}
	return SumNormalize(raw)
}

// SumNormalize treats raw scores as already proportional to likelihood and
// divides by their sum. A zero sum skips normalization and the raw values
// pass through unchanged.
func SumNormalize(raw []float32) []float32 {
	out := make([]float32, len(raw))
	copy(out, raw)
	var sum float64
	for _, v := range out {
		sum += float64(v)
	}
	if sum != 0 {
		for i := range out {
			out[i] = float32(float64(out[i]) / sum)
		}
	}
	return out
}

func softmax(raw []float32) ([]float32, bool) {
	maxVal := float64(raw[0])
	for _, v := range raw[1:] {
		if float64(v) > maxVal {
			maxVal = float64(v)
		}
	}

	exps := make([]float64, len(raw))
	var sum float64
	for i, v := range raw {
		exps[i] = math.Exp(float64(v) - maxVal)
		sum += exps[i]
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, false
	}

	out := make([]float32, len(raw))
	for i, e := range exps {
		p := e / sum
		if math.IsNaN(p) {
			return nil, false
		}
		out[i] = float32(p)
	}
	return out, true
}

// Best selects the winning class: the index of the maximum value, with ties
// resolved to the lowest index, plus its value as a float64 confidence.
func Best(probs []float32) (int, float64) {
	bestIdx := 0
	bestVal := probs[0]
	for i, v := range probs[1:] {
		if v > bestVal {
			bestVal = v
			bestIdx = i + 1
		}
	}
	return bestIdx, float64(bestVal)
}
