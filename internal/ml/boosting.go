package ml

import (
	"math"

	"golang.org/x/exp/rand"
)

// GradientBoosting fits shallow regression trees to the residuals of a
// logistic model in additive stages. Scores accumulate in log-odds space;
// PredictProba applies the sigmoid.
type GradientBoosting struct {
	Bias         float64 // initial log-odds of the base rate
	LearningRate float64
	Trees        []*TreeNode
}

type boostConfig struct {
	stages       int
	maxDepth     int
	learningRate float64
	subsample    float64
	seed         uint64
}

func defaultBoostConfig(seed uint64) boostConfig {
	return boostConfig{stages: 150, maxDepth: 3, learningRate: 0.1, subsample: 0.8, seed: seed}
}

func fitBoosting(X [][]float64, y []int, cfg boostConfig) *GradientBoosting {
	rng := rand.New(rand.NewSource(cfg.seed))
	n := len(X)

	pos := 0
	for _, v := range y {
		pos += v
	}
	base := clampProb(float64(pos) / float64(n))

	g := &GradientBoosting{
		Bias:         math.Log(base / (1 - base)),
		LearningRate: cfg.learningRate,
		Trees:        make([]*TreeNode, 0, cfg.stages),
	}

	score := make([]float64, n)
	for i := range score {
		score[i] = g.Bias
	}
	residual := make([]float64, n)
	subset := int(cfg.subsample * float64(n))

	for stage := 0; stage < cfg.stages; stage++ {
		for i := 0; i < n; i++ {
			residual[i] = float64(y[i]) - sigmoid(score[i])
		}
		idx := rng.Perm(n)[:subset]
		tree := growTree(X, residual, idx, 0, treeParams{
			maxDepth:        cfg.maxDepth,
			minSamplesSplit: 10,
			minSamplesLeaf:  5,
		})
		g.Trees = append(g.Trees, tree)
		for i := 0; i < n; i++ {
			score[i] += cfg.learningRate * tree.Predict(X[i])
		}
	}
	return g
}

// PredictProba returns the boosted success probability for one scaled row.
func (g *GradientBoosting) PredictProba(x []float64) float64 {
	score := g.Bias
	for _, t := range g.Trees {
		score += g.LearningRate * t.Predict(x)
	}
	return sigmoid(score)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func clampProb(p float64) float64 {
	return math.Min(math.Max(p, 1e-10), 1-1e-10)
}
