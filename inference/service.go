// Package inference holds the loaded classifier and the static metadata
// derived from it, and answers the service's four queries.
//
// A Service is built once at startup and never changes afterwards, so any
// number of goroutines may share one without coordination.
package inference

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"heartrisk/ml"
)

const HealthStatus = "API is running"

var ErrClassifier = errors.New("classifier failure")

// Prediction is the result of one predict call.
type Prediction struct {
	Prediction         int          `json:"prediction"`
	RiskScore          float64      `json:"riskScore"`
	RiskLevel          ml.RiskLevel `json:"riskLevel"`
	Probability        float64      `json:"probability"`
	HealthyProbability float64      `json:"healthyProbability"`
}

// HealthyBaseline is the healthy reference population, one value per feature.
type HealthyBaseline struct {
	Age            float64 `json:"age"`
	Sex            float64 `json:"sex"`
	ChestPainType  float64 `json:"chestPainType"`
	ExerciseAngina float64 `json:"exerciseAngina"`
	Oldpeak        float64 `json:"oldpeak"`
	STSlope        float64 `json:"stSlope"`
}

type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Options tunes a Service. CacheSize bounds the prediction memo; zero
// disables it.
type Options struct {
	CacheSize int
}

// Service answers inference queries against immutable, preloaded state.
type Service struct {
	model      ml.Classifier
	importance *ml.ImportanceTable
	baseline   HealthyBaseline
	cache      *lru.Cache[ml.Vector, Prediction]
}

// Open loads the model and baseline artifacts and builds a Service from them.
func Open(modelType, modelPath, baselinePath string, opts Options) (*Service, error) {
	model, err := ml.LoadModel(modelType, modelPath)
	if err != nil {
		return nil, err
	}
	baseline, err := ml.LoadBaseline(baselinePath)
	if err != nil {
		return nil, err
	}
	return NewService(model, baseline, opts)
}

// NewService computes the feature importance table from model and rounds
// the baseline once. Neither is recomputed later.
func NewService(model ml.MLModel, baseline *ml.Baseline, opts Options) (*Service, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	if baseline == nil {
		return nil, errors.New("baseline is required")
	}
	importance, err := ml.NewImportanceTable(model.FeatureImportances())
	if err != nil {
		return nil, fmt.Errorf("feature importances: %w", err)
	}

	svc := &Service{
		model:      model,
		importance: importance,
		baseline:   roundBaseline(baseline.Vector()),
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[ml.Vector, Prediction](opts.CacheSize)
		if err != nil {
			return nil, err
		}
		svc.cache = cache
	}
	return svc, nil
}

// Predict classifies x and grades the disease probability into a risk tier.
func (s *Service) Predict(x ml.Vector) (Prediction, error) {
	if err := x.Validate(); err != nil {
		return Prediction{}, err
	}
	if s.cache != nil {
		if p, ok := s.cache.Get(x); ok {
			return p, nil
		}
	}
	p, err := s.predict(x)
	if err != nil {
		return Prediction{}, err
	}
	if s.cache != nil {
		s.cache.Add(x, p)
	}
	return p, nil
}

func (s *Service) predict(x ml.Vector) (p Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrClassifier, r)
		}
	}()

	label, err := s.model.Classify(x)
	if err != nil {
		return Prediction{}, err
	}
	if label != 0 && label != 1 {
		return Prediction{}, fmt.Errorf("%w: label %d is not binary", ErrClassifier, label)
	}
	healthy, diseased, err := s.model.Probabilities(x)
	if err != nil {
		return Prediction{}, err
	}
	if !isProbability(healthy) || !isProbability(diseased) {
		return Prediction{}, fmt.Errorf("%w: probabilities %v/%v out of range", ErrClassifier, healthy, diseased)
	}

	score := ml.RiskScore(diseased)
	return Prediction{
		Prediction:         label,
		RiskScore:          score,
		RiskLevel:          ml.ClassifyRisk(score),
		Probability:        ml.Round(diseased, 3),
		HealthyProbability: ml.Round(healthy, 3),
	}, nil
}

// FeatureImportance returns importances ranked highest first, in percent.
func (s *Service) FeatureImportance() ([]ml.FeatureImportance, error) {
	return s.importance.Ranked()
}

func (s *Service) HealthyBaseline() HealthyBaseline {
	return s.baseline
}

// Health reports liveness. It does not consult the classifier.
func (s *Service) Health() Health {
	return Health{Status: HealthStatus, ModelLoaded: true}
}

// Vector returns the rounded baseline in training column order.
func (b HealthyBaseline) Vector() ml.Vector {
	return ml.Vector{b.Age, b.Sex, b.ChestPainType, b.ExerciseAngina, b.Oldpeak, b.STSlope}
}

func roundBaseline(v ml.Vector) HealthyBaseline {
	return HealthyBaseline{
		Age:            ml.Round(v[ml.Age], 2),
		Sex:            ml.Round(v[ml.Sex], 2),
		ChestPainType:  ml.Round(v[ml.ChestPainType], 2),
		ExerciseAngina: ml.Round(v[ml.ExerciseAngina], 2),
		Oldpeak:        ml.Round(v[ml.Oldpeak], 2),
		STSlope:        ml.Round(v[ml.STSlope], 2),
	}
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
