package engine

import (
	"math"
	"math/rand"
	"sort"
)

// ForestConfig holds hyperparameters for training a bagged-tree ensemble.
type ForestConfig struct {
	TreeCount        int
	MaxDepth         int
	MinLeafSize      int
	FeaturesPerSplit int
	Seed             int64
}

// DefaultForestConfig returns the hyperparameters used for the outcome model
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		TreeCount:        100,
		MaxDepth:         12,
		MinLeafSize:      2,
		FeaturesPerSplit: 0, // 0 means sqrt of feature count
		Seed:             42,
	}
}

// TreeNode is a node of a CART decision tree. Interior nodes split on
// Feature <= Threshold; leaves carry a normalized class distribution.
// All fields are exported for gob serialization.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	ClassDist []float64
}

// Forest is a bagged ensemble of CART trees over a fixed class count.
type Forest struct {
	Trees      []*TreeNode
	NumClasses int
}

// TrainForest fits a bagged-tree ensemble on the given feature rows and
// integer class labels. Each tree sees a bootstrap sample of the rows and
// a random feature subset at every split.
func TrainForest(rows [][]float64, labels []int, numClasses int, cfg ForestConfig) *Forest {
	rng := rand.New(rand.NewSource(cfg.Seed))

	featuresPerSplit := cfg.FeaturesPerSplit
	if featuresPerSplit <= 0 && len(rows) > 0 {
		featuresPerSplit = int(math.Ceil(math.Sqrt(float64(len(rows[0])))))
	}

	forest := &Forest{
		Trees:      make([]*TreeNode, 0, cfg.TreeCount),
		NumClasses: numClasses,
	}

	for t := 0; t < cfg.TreeCount; t++ {
		sample := make([]int, len(rows))
		for i := range sample {
			sample[i] = rng.Intn(len(rows))
		}
		tree := buildTree(rows, labels, sample, numClasses, cfg.MaxDepth, cfg.MinLeafSize, featuresPerSplit, rng)
		forest.Trees = append(forest.Trees, tree)
	}

	return forest
}

// PredictProba returns the class probability distribution for one feature
// vector, averaged across all trees.
func (f *Forest) PredictProba(row []float64) []float64 {
	probs := make([]float64, f.NumClasses)
	if len(f.Trees) == 0 {
		return probs
	}

	for _, tree := range f.Trees {
		dist := tree.distribution(row)
		for c, p := range dist {
			probs[c] += p
		}
	}
	for c := range probs {
		probs[c] /= float64(len(f.Trees))
	}
	return probs
}

// Predict returns the argmax class for one feature vector, lowest index
// winning exact ties.
func (f *Forest) Predict(row []float64) int {
	probs := f.PredictProba(row)
	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return best
}

func (n *TreeNode) distribution(row []float64) []float64 {
	node := n
	for node.Left != nil {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.ClassDist
}

func buildTree(rows [][]float64, labels, indices []int, numClasses, depth, minLeaf, featuresPerSplit int, rng *rand.Rand) *TreeNode {
	counts := classCounts(labels, indices, numClasses)

	if depth <= 0 || len(indices) < 2*minLeaf || isPure(counts) {
		return leaf(counts, len(indices))
	}

	feature, threshold, ok := bestSplit(rows, labels, indices, counts, numClasses, minLeaf, featuresPerSplit, rng)
	if !ok {
		return leaf(counts, len(indices))
	}

	var left, right []int
	for _, i := range indices {
		if rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf(counts, len(indices))
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(rows, labels, left, numClasses, depth-1, minLeaf, featuresPerSplit, rng),
		Right:     buildTree(rows, labels, right, numClasses, depth-1, minLeaf, featuresPerSplit, rng),
	}
}

// bestSplit searches a random feature subset for the split minimizing the
// weighted Gini impurity of the two children.
func bestSplit(rows [][]float64, labels, indices []int, parentCounts []float64, numClasses, minLeaf, featuresPerSplit int, rng *rand.Rand) (int, float64, bool) {
	numFeatures := len(rows[indices[0]])
	candidates := rng.Perm(numFeatures)
	if featuresPerSplit < numFeatures {
		candidates = candidates[:featuresPerSplit]
	}

	bestGini := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0

	values := make([]float64, 0, len(indices))
	for _, feature := range candidates {
		values = values[:0]
		for _, i := range indices {
			values = append(values, rows[i][feature])
		}
		sort.Float64s(values)

		prev := values[0]
		for _, v := range values[1:] {
			if v == prev {
				continue
			}
			threshold := (prev + v) / 2
			prev = v

			leftCounts := make([]float64, numClasses)
			leftN, rightN := 0, 0
			for _, i := range indices {
				if rows[i][feature] <= threshold {
					leftCounts[labels[i]]++
					leftN++
				} else {
					rightN++
				}
			}
			if leftN < minLeaf || rightN < minLeaf {
				continue
			}

			rightCounts := make([]float64, numClasses)
			for c := range rightCounts {
				rightCounts[c] = parentCounts[c] - leftCounts[c]
			}

			total := float64(leftN + rightN)
			gini := (float64(leftN)/total)*giniImpurity(leftCounts, leftN) +
				(float64(rightN)/total)*giniImpurity(rightCounts, rightN)
			if gini < bestGini {
				bestGini = gini
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func giniImpurity(counts []float64, n int) float64 {
	if n == 0 {
		return 0
	}
	impurity := 1.0
	total := float64(n)
	for _, c := range counts {
		p := c / total
		impurity -= p * p
	}
	return impurity
}

func classCounts(labels, indices []int, numClasses int) []float64 {
	counts := make([]float64, numClasses)
	for _, i := range indices {
		counts[labels[i]]++
	}
	return counts
}

func isPure(counts []float64) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func leaf(counts []float64, n int) *TreeNode {
	dist := make([]float64, len(counts))
	if n > 0 {
		for c, count := range counts {
			dist[c] = count / float64(n)
		}
	}
	return &TreeNode{ClassDist: dist}
}
