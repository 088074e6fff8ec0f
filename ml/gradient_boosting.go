package ml

import (
	"errors"
	"fmt"
	"math"
)

// GradientBoosting is a binary log-loss boosted ensemble of regression trees.
type GradientBoosting struct {
	learningRate float64
	initScore    float64
	trees        []Tree
	importances  []float64
}

func (gb *GradientBoosting) Load(path string) error {
	artifact, err := loadModelArtifact(path, ModelTypeGradientBoosting)
	if err != nil {
		return err
	}
	if len(artifact.Trees) == 0 {
		return fmt.Errorf("%w: ensemble has no trees", ErrInvalidModel)
	}
	if artifact.LearningRate <= 0 {
		return fmt.Errorf("%w: learning_rate must be positive", ErrInvalidModel)
	}
	for i := range artifact.Trees {
		if err := artifact.Trees[i].validate(); err != nil {
			return fmt.Errorf("%w: tree %d: %v", ErrInvalidModel, i, err)
		}
	}

	var importances []float64
	if len(artifact.FeatureImportances) > 0 {
		importances, err = normalizeImportances(artifact.FeatureImportances)
	} else {
		importances, err = meanDecreaseImpurity(artifact.Trees)
	}
	if err != nil {
		return err
	}

	gb.learningRate = artifact.LearningRate
	gb.initScore = artifact.InitScore
	gb.trees = artifact.Trees
	gb.importances = importances
	return nil
}

func (gb *GradientBoosting) Classify(x Vector) (int, error) {
	_, diseased, err := gb.Probabilities(x)
	if err != nil {
		return 0, err
	}
	if diseased > 0.5 {
		return 1, nil
	}
	return 0, nil
}

func (gb *GradientBoosting) Probabilities(x Vector) (float64, float64, error) {
	raw, err := gb.decision(x)
	if err != nil {
		return 0, 0, err
	}
	diseased := sigmoid(raw)
	return 1 - diseased, diseased, nil
}

func (gb *GradientBoosting) FeatureImportances() []float64 {
	return append([]float64(nil), gb.importances...)
}

func (gb *GradientBoosting) decision(x Vector) (float64, error) {
	if len(gb.trees) == 0 {
		return 0, errors.New("model not loaded")
	}
	if err := x.Validate(); err != nil {
		return 0, err
	}
	raw := gb.initScore
	for i := range gb.trees {
		leaf, err := gb.trees[i].leaf(x)
		if err != nil {
			return 0, err
		}
		raw += gb.learningRate * leaf.Value
	}
	return raw, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
