package ml

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

// ModelMetrics summarizes holdout and cross-validation performance for one
// base model or for the soft-vote ensemble.
type ModelMetrics struct {
	Accuracy float64 `json:"accuracy"`
	AUC      float64 `json:"auc"`
	CVMean   float64 `json:"cv_mean"`
	CVStd    float64 `json:"cv_std"`
}

// probaModel is any fitted learner scoring a single scaled row.
type probaModel interface {
	PredictProba(x []float64) float64
}

func accuracy(probs []float64, y []int) float64 {
	correct := 0
	for i, p := range probs {
		pred := 0
		if p >= 0.5 {
			pred = 1
		}
		if pred == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y))
}

// rocAUC is the rank-based (Mann-Whitney) estimator; ties contribute half.
func rocAUC(probs []float64, y []int) float64 {
	type pair struct {
		p float64
		y int
	}
	pairs := make([]pair, len(probs))
	pos, neg := 0, 0
	for i := range probs {
		pairs[i] = pair{probs[i], y[i]}
		if y[i] == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0.5
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].p < pairs[b].p })

	// average ranks over tied scores
	ranks := make([]float64, len(pairs))
	for i := 0; i < len(pairs); {
		j := i
		for j < len(pairs) && pairs[j].p == pairs[i].p {
			j++
		}
		avg := float64(i+j+1) / 2 // 1-based rank average of [i, j)
		for k := i; k < j; k++ {
			ranks[k] = avg
		}
		i = j
	}

	posRankSum := 0.0
	for i, pr := range pairs {
		if pr.y == 1 {
			posRankSum += ranks[i]
		}
	}
	u := posRankSum - float64(pos)*float64(pos+1)/2
	return u / (float64(pos) * float64(neg))
}

func scoreAll(m probaModel, X [][]float64) []float64 {
	probs := make([]float64, len(X))
	for i, row := range X {
		probs[i] = m.PredictProba(row)
	}
	return probs
}

// crossValidate runs k-fold accuracy with shuffled fold assignment. fit must
// train a fresh model on the fold's training split.
func crossValidate(X [][]float64, y []int, k int, seed uint64, fit func(X [][]float64, y []int) probaModel) (mean, std float64) {
	n := len(X)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	scores := make([]float64, 0, k)
	for fold := 0; fold < k; fold++ {
		lo := fold * n / k
		hi := (fold + 1) * n / k

		trainX := make([][]float64, 0, n-(hi-lo))
		trainY := make([]int, 0, n-(hi-lo))
		testX := make([][]float64, 0, hi-lo)
		testY := make([]int, 0, hi-lo)
		for pos, i := range perm {
			if pos >= lo && pos < hi {
				testX = append(testX, X[i])
				testY = append(testY, y[i])
			} else {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}

		m := fit(trainX, trainY)
		scores = append(scores, accuracy(scoreAll(m, testX), testY))
	}

	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))
	for _, s := range scores {
		std += (s - mean) * (s - mean)
	}
	return mean, math.Sqrt(std / float64(len(scores)))
}

// popStd is the population standard deviation (divisor n, not n-1).
func popStd(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	varSum := 0.0
	for _, x := range xs {
		varSum += (x - mean) * (x - mean)
	}
	return math.Sqrt(varSum / float64(len(xs)))
}

func meanOf(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
