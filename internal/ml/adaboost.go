package ml

import (
	"math"
	"sort"
)

// Stump is a one-split weak learner: predicts Polarity when the feature
// value is at most Threshold, -Polarity otherwise.
type Stump struct {
	Feature   int
	Threshold float64
	Polarity  float64 // +1 or -1
	Alpha     float64
}

func (s *Stump) classify(x []float64) float64 {
	if x[s.Feature] <= s.Threshold {
		return s.Polarity
	}
	return -s.Polarity
}

// AdaBoost boosts decision stumps with exponential reweighting. The signed
// margin, normalized by the total stump weight, maps linearly onto [0,1]
// as a pseudo-probability.
type AdaBoost struct {
	Stumps []Stump
}

type adaConfig struct {
	rounds int
}

func defaultAdaConfig() adaConfig {
	return adaConfig{rounds: 100}
}

func fitAdaBoost(X [][]float64, y []int, cfg adaConfig) *AdaBoost {
	n := len(X)
	signed := make([]float64, n)
	for i, v := range y {
		if v == 1 {
			signed[i] = 1
		} else {
			signed[i] = -1
		}
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}

	a := &AdaBoost{Stumps: make([]Stump, 0, cfg.rounds)}
	for round := 0; round < cfg.rounds; round++ {
		stump, err := bestStump(X, signed, w)
		if err >= 0.5 {
			break // no weak learner left with an edge
		}
		err = math.Min(math.Max(err, 1e-10), 1-1e-10)
		stump.Alpha = 0.5 * math.Log((1-err)/err)

		norm := 0.0
		for i := range w {
			w[i] *= math.Exp(-stump.Alpha * signed[i] * stump.classify(X[i]))
			norm += w[i]
		}
		for i := range w {
			w[i] /= norm
		}
		a.Stumps = append(a.Stumps, stump)
	}
	return a
}

// bestStump scans every feature threshold for the minimum weighted error,
// trying both polarities. Ties break toward the lower feature index so
// training is deterministic.
func bestStump(X [][]float64, signed, w []float64) (Stump, float64) {
	best := Stump{Polarity: 1}
	bestErr := math.Inf(1)
	n := len(X)
	order := make([]int, n)

	for f := 0; f < len(X[0]); f++ {
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return X[order[a]][f] < X[order[b]][f]
		})

		// errBelow: weighted error of "predict +1 when value <= threshold"
		// starting with the threshold below every sample (all predicted -1).
		errBelow := 0.0
		for i := 0; i < n; i++ {
			if signed[i] > 0 {
				errBelow += w[i]
			}
		}
		for k := 0; k < n; k++ {
			i := order[k]
			if signed[i] > 0 {
				errBelow -= w[i]
			} else {
				errBelow += w[i]
			}
			if k+1 < n && X[order[k+1]][f] == X[i][f] {
				continue
			}
			thr := X[i][f]
			if e := errBelow; e < bestErr {
				best, bestErr = Stump{Feature: f, Threshold: thr, Polarity: 1}, e
			}
			if e := 1 - errBelow; e < bestErr {
				best, bestErr = Stump{Feature: f, Threshold: thr, Polarity: -1}, e
			}
		}
	}
	return best, bestErr
}

// PredictProba maps the normalized ensemble margin from [-1,1] to [0,1].
func (a *AdaBoost) PredictProba(x []float64) float64 {
	if len(a.Stumps) == 0 {
		return 0.5
	}
	margin, total := 0.0, 0.0
	for i := range a.Stumps {
		margin += a.Stumps[i].Alpha * a.Stumps[i].classify(x)
		total += a.Stumps[i].Alpha
	}
	return (margin/total + 1) / 2
}
