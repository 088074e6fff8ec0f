package ml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDecisionTreeLoadPredict(t *testing.T) {
	model := &DecisionTree{}
	if err := model.Load("testdata/decision_tree.json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	label, err := model.Classify(Vector{54, 1, 2, 0, 1.0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 0 {
		t.Fatalf("expected label 0, got %d", label)
	}
	healthy, diseased, err := model.Probabilities(Vector{54, 1, 2, 0, 1.0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if healthy != 0.8 || diseased != 0.2 {
		t.Fatalf("expected 0.8/0.2, got %v/%v", healthy, diseased)
	}

	label, err = model.Classify(Vector{54, 1, 2, 1, 1.0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}
}

func TestDecisionTreeDerivesImportances(t *testing.T) {
	model := &DecisionTree{}
	if err := model.Load("testdata/decision_tree.json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	importances := model.FeatureImportances()
	if len(importances) != FeatureCount {
		t.Fatalf("expected %d importances, got %d", FeatureCount, len(importances))
	}
	if importances[ExerciseAngina] != 1 {
		t.Fatalf("expected all weight on exercise angina, got %v", importances)
	}
}

func TestDecisionTreeRejectsLeafWithoutCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	payload := `{"model_type":"decision_tree","n_features":6,"nodes":[{"is_leaf":true}]}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}
	err := (&DecisionTree{}).Load(path)
	if !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
}

func TestDecisionTreeNotLoaded(t *testing.T) {
	if _, _, err := (&DecisionTree{}).Probabilities(Vector{}); err == nil {
		t.Fatal("expected error from unloaded model")
	}
}
