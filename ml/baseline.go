package ml

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Baseline holds the average feature values of the healthy training
// population, keyed by training column name.
type Baseline struct {
	values map[string]float64
}

// LoadBaseline reads and parses the baseline artifact at path.
func LoadBaseline(path string) (*Baseline, error) {
	payload, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	baseline, err := ParseBaseline(payload)
	if err != nil {
		return nil, fmt.Errorf("baseline %s: %w", path, err)
	}
	return baseline, nil
}

// ParseBaseline accepts either a single record or a list of records. Only
// the first record of a list is used.
func ParseBaseline(payload []byte) (*Baseline, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errors.New("malformed JSON")
	}
	record := gjson.ParseBytes(payload)
	if record.IsArray() {
		items := record.Array()
		if len(items) == 0 {
			return nil, errors.New("baseline list is empty")
		}
		record = items[0]
	}
	if !record.IsObject() {
		return nil, errors.New("baseline record must be a JSON object")
	}

	fields := objectFields(record)
	values := make(map[string]float64, FeatureCount)
	for _, f := range features {
		raw, ok := fields[f.Name]
		if !ok {
			continue
		}
		value, err := ToFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		values[f.Name] = value
	}
	return &Baseline{values: values}, nil
}

// Vector returns the baseline in training column order. Columns the
// artifact did not carry are 0.
func (b *Baseline) Vector() Vector {
	var vec Vector
	for i, f := range features {
		vec[i] = b.values[f.Name]
	}
	return vec
}
