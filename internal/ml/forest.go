package ml

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/damiloju/startup-analyst/internal/features"
)

// RandomForest bags variance-criterion trees over bootstrap samples with
// sqrt-feature subsampling at each node.
type RandomForest struct {
	Trees      []*TreeNode
	Importance []float64 // normalized mean impurity decrease per feature
}

type forestConfig struct {
	trees          int
	maxDepth       int
	minSamplesLeaf int
	seed           uint64
}

func defaultForestConfig(seed uint64) forestConfig {
	return forestConfig{trees: 100, maxDepth: 12, minSamplesLeaf: 2, seed: seed}
}

func fitForest(X [][]float64, y []int, cfg forestConfig) *RandomForest {
	rng := rand.New(rand.NewSource(cfg.seed))
	targets := toFloats(y)
	n := len(X)
	maxFeatures := int(math.Sqrt(float64(len(X[0]))))

	f := &RandomForest{
		Trees:      make([]*TreeNode, 0, cfg.trees),
		Importance: make([]float64, len(X[0])),
	}
	for t := 0; t < cfg.trees; t++ {
		boot := make([]int, n)
		for i := range boot {
			boot[i] = rng.Intn(n)
		}
		f.Trees = append(f.Trees, growTree(X, targets, boot, 0, treeParams{
			maxDepth:        cfg.maxDepth,
			minSamplesSplit: 2 * cfg.minSamplesLeaf,
			minSamplesLeaf:  cfg.minSamplesLeaf,
			maxFeatures:     maxFeatures,
			rng:             rng,
			importance:      f.Importance,
		}))
	}

	total := 0.0
	for _, v := range f.Importance {
		total += v
	}
	if total > 0 {
		for i := range f.Importance {
			f.Importance[i] /= total
		}
	}
	return f
}

// PredictProba returns the mean leaf probability across all trees.
func (f *RandomForest) PredictProba(x []float64) float64 {
	sum := 0.0
	for _, t := range f.Trees {
		sum += t.Predict(x)
	}
	return sum / float64(len(f.Trees))
}

// ImportanceByName maps normalized feature importance onto column names.
func (f *RandomForest) ImportanceByName() map[string]float64 {
	out := make(map[string]float64, len(f.Importance))
	for i, v := range f.Importance {
		out[features.Name(i)] = v
	}
	return out
}

func toFloats(y []int) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = float64(v)
	}
	return out
}
