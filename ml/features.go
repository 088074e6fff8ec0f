package ml

import (
	"fmt"
	"math"
)

// FeatureCount is the length of every vector the classifier was trained on.
const FeatureCount = 6

// Column positions in training order. The classifier only understands this order.
const (
	Age = iota
	Sex
	ChestPainType
	ExerciseAngina
	Oldpeak
	STSlope
)

// Vector is one feature vector in training column order.
type Vector [FeatureCount]float64

// Feature pairs the training column name (used by the model and baseline
// artifacts) with the field name used on the API.
type Feature struct {
	Name  string
	Field string
}

var features = [FeatureCount]Feature{
	Age:            {Name: "age", Field: "age"},
	Sex:            {Name: "sex", Field: "sex"},
	ChestPainType:  {Name: "chest pain type", Field: "chestPainType"},
	ExerciseAngina: {Name: "exercise angina", Field: "exerciseAngina"},
	Oldpeak:        {Name: "oldpeak", Field: "oldpeak"},
	STSlope:        {Name: "ST slope", Field: "stSlope"},
}

// FeatureNames lists the training column names in vector order.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	for i, f := range features {
		names[i] = f.Name
	}
	return names
}

// Validate rejects NaN and infinite components.
func (v Vector) Validate() error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s: %w", features[i].Field, ErrNonFinite)
		}
	}
	return nil
}
