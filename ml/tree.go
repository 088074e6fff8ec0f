package ml

import (
	"errors"
	"fmt"
	"math"
)

type TreeNode struct {
	FeatureIdx  int       `json:"feature_idx"`
	Threshold   float64   `json:"threshold"`
	LeftChild   int       `json:"left_child"`
	RightChild  int       `json:"right_child"`
	IsLeaf      bool      `json:"is_leaf"`
	Value       float64   `json:"value"`
	ClassCounts []float64 `json:"class_counts,omitempty"`
	Impurity    float64   `json:"impurity"`
	Samples     float64   `json:"samples"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t *Tree) validate() error {
	if len(t.Nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, node := range t.Nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= FeatureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("node %d: invalid child %d", i, child)
			}
		}
	}
	return nil
}

// leaf walks from the root to the leaf x falls into. validate guarantees
// children always point forward, so the walk terminates.
func (t *Tree) leaf(x Vector) (TreeNode, error) {
	if len(t.Nodes) == 0 {
		return TreeNode{}, errors.New("model not loaded")
	}
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if x[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return TreeNode{}, errors.New("invalid tree state")
		}
	}
}

// impurityDecrease adds each split's weighted impurity decrease to dst,
// indexed by feature, and returns the tree total.
func (t *Tree) impurityDecrease(dst []float64) float64 {
	total := 0.0
	for _, node := range t.Nodes {
		if node.IsLeaf {
			continue
		}
		left := t.Nodes[node.LeftChild]
		right := t.Nodes[node.RightChild]
		decrease := node.Samples*node.Impurity - left.Samples*left.Impurity - right.Samples*right.Impurity
		dst[node.FeatureIdx] += decrease
		total += decrease
	}
	return total
}

// meanDecreaseImpurity averages the normalized per-tree importances over
// every tree that has at least one split, then renormalizes.
func meanDecreaseImpurity(trees []Tree) ([]float64, error) {
	avg := make([]float64, FeatureCount)
	used := 0
	for i := range trees {
		perTree := make([]float64, FeatureCount)
		total := trees[i].impurityDecrease(perTree)
		if total <= 0 {
			continue
		}
		for j := range perTree {
			avg[j] += perTree[j] / total
		}
		used++
	}
	if used == 0 {
		return nil, fmt.Errorf("%w: no tree has a split to derive importances from", ErrInvalidModel)
	}
	return normalizeImportances(avg)
}

func normalizeImportances(weights []float64) ([]float64, error) {
	if len(weights) != FeatureCount {
		return nil, fmt.Errorf("%w: %d importances, want %d", ErrFeatureCount, len(weights), FeatureCount)
	}
	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: importance %d is %v", ErrInvalidModel, i, w)
		}
		sum += w
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: importances sum to zero", ErrInvalidModel)
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out, nil
}
