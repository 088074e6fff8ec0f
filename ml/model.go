package ml

// Classifier is the black-box binary classifier. Label 1 means diseased.
// Implementations must be safe for concurrent use without locking.
type Classifier interface {
	Classify(x Vector) (int, error)
	Probabilities(x Vector) (healthy, diseased float64, err error)
}

type MLModel interface {
	Classifier
	// FeatureImportances returns one non-negative weight per feature in
	// training order, summing to 1.
	FeatureImportances() []float64
	Load(path string) error
}
