package ml

import (
	"fmt"
)

const (
	ModelTypeGradientBoosting = "gradient_boosting"
	ModelTypeDecisionTree     = "decision_tree"
)

// LoadModel 按类型从JSON文件加载模型
func LoadModel(modelType, path string) (MLModel, error) {
	var model MLModel
	switch modelType {
	case ModelTypeGradientBoosting:
		model = &GradientBoosting{}
	case ModelTypeDecisionTree:
		model = &DecisionTree{}
	default:
		return nil, fmt.Errorf("unsupported model type %q", modelType)
	}
	if err := model.Load(path); err != nil {
		return nil, fmt.Errorf("load %s model from %s: %w", modelType, path, err)
	}
	return model, nil
}
