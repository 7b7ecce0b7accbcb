package nlpmodel

import "math"

// logSumExp returns alpha*log(sum(exp(v_i/alpha))) computed in a
// numerically stable way (shift by the max before exponentiating), along
// with the softmax weights d(result)/d(v_i), which sum to 1.
func logSumExp(v []float64, alpha float64) (result float64, weights []float64) {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	weights = make([]float64, len(v))
	sum := 0.0
	for i, x := range v {
		w := math.Exp((x - m) / alpha)
		weights[i] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}
	result = m + alpha*math.Log(sum)
	return
}

// smoothMin returns a smooth approximation of min(v) via
// -alpha*log(sum(exp(-v_i/alpha))), along with the softmin weights
// d(result)/d(v_i), which sum to 1 and concentrate on the smallest v_i as
// alpha -> 0.
func smoothMin(v []float64, alpha float64) (result float64, weights []float64) {
	neg := make([]float64, len(v))
	for i, x := range v {
		neg[i] = -x
	}
	r, w := logSumExp(neg, alpha)
	return -r, w
}

// softplus is a smooth approximation of max(0, x): alpha*log(1+exp(x/alpha)).
// Its derivative is the logistic sigmoid of x/alpha.
func softplus(x, alpha float64) (value, deriv float64) {
	// Numerically stable softplus: for large x/alpha, alpha*log(1+exp(t)) ~= x.
	t := x / alpha
	switch {
	case t > 30:
		value = x
		deriv = 1
	case t < -30:
		value = 0
		deriv = 0
	default:
		value = alpha * math.Log1p(math.Exp(t))
		deriv = 1 / (1 + math.Exp(-t))
	}
	return
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
