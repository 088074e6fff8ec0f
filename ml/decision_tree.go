package ml

import (
	"errors"
	"fmt"
)

// DecisionTree is a single classification tree whose leaves carry the
// training class counts [healthy, diseased].
type DecisionTree struct {
	tree        Tree
	importances []float64
}

func (dt *DecisionTree) Load(path string) error {
	artifact, err := loadModelArtifact(path, ModelTypeDecisionTree)
	if err != nil {
		return err
	}
	tree := Tree{Nodes: artifact.Nodes}
	if err := tree.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	for i, node := range tree.Nodes {
		if !node.IsLeaf {
			continue
		}
		if len(node.ClassCounts) != 2 || node.ClassCounts[0] < 0 || node.ClassCounts[1] < 0 ||
			node.ClassCounts[0]+node.ClassCounts[1] <= 0 {
			return fmt.Errorf("%w: leaf %d needs two non-negative class counts", ErrInvalidModel, i)
		}
	}

	var importances []float64
	if len(artifact.FeatureImportances) > 0 {
		importances, err = normalizeImportances(artifact.FeatureImportances)
	} else {
		importances, err = meanDecreaseImpurity([]Tree{tree})
	}
	if err != nil {
		return err
	}

	dt.tree = tree
	dt.importances = importances
	return nil
}

func (dt *DecisionTree) Classify(x Vector) (int, error) {
	healthy, diseased, err := dt.Probabilities(x)
	if err != nil {
		return 0, err
	}
	if diseased > healthy {
		return 1, nil
	}
	return 0, nil
}

func (dt *DecisionTree) Probabilities(x Vector) (float64, float64, error) {
	if len(dt.tree.Nodes) == 0 {
		return 0, 0, errors.New("model not loaded")
	}
	if err := x.Validate(); err != nil {
		return 0, 0, err
	}
	leaf, err := dt.tree.leaf(x)
	if err != nil {
		return 0, 0, err
	}
	total := leaf.ClassCounts[0] + leaf.ClassCounts[1]
	return leaf.ClassCounts[0] / total, leaf.ClassCounts[1] / total, nil
}

func (dt *DecisionTree) FeatureImportances() []float64 {
	return append([]float64(nil), dt.importances...)
}
