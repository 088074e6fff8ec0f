package ml

import (
	"fmt"
	"sort"
)

type FeatureImportance struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
}

// ImportanceTable holds feature importances on a percent scale, ranked
// highest first. Equal weights keep training column order.
type ImportanceTable struct {
	ranked []FeatureImportance
}

func NewImportanceTable(weights []float64) (*ImportanceTable, error) {
	normalized, err := normalizeImportances(weights)
	if err != nil {
		return nil, err
	}
	ranked := make([]FeatureImportance, FeatureCount)
	for i, f := range features {
		ranked[i] = FeatureImportance{Name: f.Name, Importance: normalized[i] * 100}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Importance > ranked[j].Importance
	})
	return &ImportanceTable{ranked: ranked}, nil
}

// Ranked returns the table rounded to 2 places.
func (t *ImportanceTable) Ranked() ([]FeatureImportance, error) {
	if t == nil || len(t.ranked) != FeatureCount {
		return nil, fmt.Errorf("%w: importance table is incomplete", ErrFeatureCount)
	}
	out := make([]FeatureImportance, len(t.ranked))
	for i, entry := range t.ranked {
		out[i] = FeatureImportance{Name: entry.Name, Importance: Round(entry.Importance, 2)}
	}
	return out, nil
}
