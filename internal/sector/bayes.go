package sector

import "math"

// NaiveBayes is a multinomial naive Bayes classifier with additive smoothing
type NaiveBayes struct {
	Alpha          float64     `msgpack:"alpha"`
	ClassLogPrior  []float64   `msgpack:"class_log_prior"`
	FeatureLogProb [][]float64 `msgpack:"feature_log_prob"`
}

// Fit estimates the class priors and per-class feature probabilities
func (nb *NaiveBayes) Fit(x [][]feature, y []int, classes, features int) {
	counts := make([][]float64, classes)
	for c := range counts {
		counts[c] = make([]float64, features)
	}
	perClass := make([]float64, classes)
	for i, vec := range x {
		perClass[y[i]]++
		for _, f := range vec {
			counts[y[i]][f.Index] += f.Value
		}
	}

	nb.ClassLogPrior = make([]float64, classes)
	nb.FeatureLogProb = make([][]float64, classes)
	for c := 0; c < classes; c++ {
		nb.ClassLogPrior[c] = math.Log(perClass[c] / float64(len(x)))

		var total float64
		for _, v := range counts[c] {
			total += v + nb.Alpha
		}
		nb.FeatureLogProb[c] = make([]float64, features)
		for j, v := range counts[c] {
			nb.FeatureLogProb[c][j] = math.Log((v + nb.Alpha) / total)
		}
	}
}

// Predict returns the most likely class of vec. Ties go to the lowest
// class index.
func (nb *NaiveBayes) Predict(vec []feature) int {
	best, bestScore := 0, math.Inf(-1)
	for c, prior := range nb.ClassLogPrior {
		score := prior
		for _, f := range vec {
			score += f.Value * nb.FeatureLogProb[c][f.Index]
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
