package ml

import (
	"sort"

	"golang.org/x/exp/rand"
)

// TreeNode is one node of a binary regression tree. With 0/1 targets the
// variance criterion picks the same splits as gini, so the one learner
// serves both the forest (leaf value = class probability) and boosting
// (leaf value = mean residual). Fields are exported for gob persistence.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Value     float64
	Leaf      bool
}

// Predict walks the tree for one scaled feature row.
func (n *TreeNode) Predict(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int        // 0 means scan every feature
	rng             *rand.Rand // required when maxFeatures > 0
	importance      []float64  // optional per-feature gain accumulator
}

// growTree builds a tree over the samples selected by idx. idx may contain
// duplicates (bootstrap draws) and is reordered in place.
func growTree(X [][]float64, y []float64, idx []int, depth int, p treeParams) *TreeNode {
	sum, sumSq := 0.0, 0.0
	for _, i := range idx {
		sum += y[i]
		sumSq += y[i] * y[i]
	}
	n := float64(len(idx))
	mean := sum / n
	sse := sumSq - sum*sum/n

	leaf := &TreeNode{Leaf: true, Value: mean}
	if depth >= p.maxDepth || len(idx) < p.minSamplesSplit || sse <= 1e-12 {
		return leaf
	}

	feat, thr, gain := bestSplit(X, y, idx, sse, p)
	if gain <= 0 {
		return leaf
	}
	if p.importance != nil {
		p.importance[feat] += gain
	}

	left := idx[:0]
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if X[i][feat] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &TreeNode{
		Feature:   feat,
		Threshold: thr,
		Left:      growTree(X, y, left, depth+1, p),
		Right:     growTree(X, y, right, depth+1, p),
	}
}

// bestSplit scans candidate features for the threshold with the largest
// SSE reduction. Candidate thresholds are midpoints between consecutive
// distinct values, honoring the min-samples-per-leaf bound.
func bestSplit(X [][]float64, y []float64, idx []int, parentSSE float64, p treeParams) (feat int, thr, gain float64) {
	feat = -1
	candidates := featureCandidates(len(X[0]), p)

	order := make([]int, len(idx))
	for _, f := range candidates {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return X[order[a]][f] < X[order[b]][f]
		})

		total := 0.0
		totalSq := 0.0
		for _, i := range order {
			total += y[i]
			totalSq += y[i] * y[i]
		}

		leftSum, leftSq := 0.0, 0.0
		n := len(order)
		for k := 0; k < n-1; k++ {
			yi := y[order[k]]
			leftSum += yi
			leftSq += yi * yi

			nl := k + 1
			nr := n - nl
			if nl < p.minSamplesLeaf || nr < p.minSamplesLeaf {
				continue
			}
			vl, vr := X[order[k]][f], X[order[k+1]][f]
			if vl == vr {
				continue
			}

			leftSSE := leftSq - leftSum*leftSum/float64(nl)
			rightSum := total - leftSum
			rightSSE := (totalSq - leftSq) - rightSum*rightSum/float64(nr)
			g := parentSSE - leftSSE - rightSSE
			if g > gain {
				feat, thr, gain = f, (vl+vr)/2, g
			}
		}
	}
	return feat, thr, gain
}

// featureCandidates returns the feature subset to scan at this node.
func featureCandidates(nFeatures int, p treeParams) []int {
	if p.maxFeatures <= 0 || p.maxFeatures >= nFeatures || p.rng == nil {
		all := make([]int, nFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return p.rng.Perm(nFeatures)[:p.maxFeatures]
}
