package ml

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// modelArtifact is the on-disk layout shared by every model type.
// Gradient boosting fills Trees; a single decision tree fills Nodes.
type modelArtifact struct {
	ModelType          string     `json:"model_type"`
	NFeatures          int        `json:"n_features"`
	LearningRate       float64    `json:"learning_rate,omitempty"`
	InitScore          float64    `json:"init_score,omitempty"`
	FeatureImportances []float64  `json:"feature_importances,omitempty"`
	Trees              []Tree     `json:"trees,omitempty"`
	Nodes              []TreeNode `json:"nodes,omitempty"`
}

// readArtifact returns the file contents as UTF-8, dropping a leading byte
// order mark if an exporter wrote one.
func readArtifact(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	utf8Reader := transform.NewReader(file, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return io.ReadAll(utf8Reader)
}

func loadModelArtifact(path, modelType string) (*modelArtifact, error) {
	payload, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	var artifact modelArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if artifact.ModelType != "" && artifact.ModelType != modelType {
		return nil, fmt.Errorf("%w: artifact holds %q, expected %q", ErrInvalidModel, artifact.ModelType, modelType)
	}
	if artifact.NFeatures != FeatureCount {
		return nil, fmt.Errorf("%w: n_features is %d, want %d", ErrFeatureCount, artifact.NFeatures, FeatureCount)
	}
	return &artifact, nil
}
