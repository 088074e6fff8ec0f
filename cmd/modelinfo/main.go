// Command modelinfo loads the configured artifacts exactly as the server
// does and prints what the server would serve from them.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"heartrisk/config"
	"heartrisk/inference"
	"heartrisk/ml"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	modelType := flag.String("model_type", "", "override model.type")
	modelPath := flag.String("model_path", "", "override model.path")
	baselinePath := flag.String("baseline_path", "", "override model.baseline_path")
	predict := flag.String("predict", "", "comma separated feature values to score, in training order")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	override(&cfg.Model.Type, *modelType)
	override(&cfg.Model.Path, *modelPath)
	override(&cfg.Model.BaselinePath, *baselinePath)

	svc, err := inference.Open(cfg.Model.Type, cfg.Model.Path, cfg.Model.BaselinePath, inference.Options{})
	if err != nil {
		log.Fatalf("failed to load artifacts: %v", err)
	}

	ranked, err := svc.FeatureImportance()
	if err != nil {
		log.Fatalf("failed to rank features: %v", err)
	}
	baselineByName := baselineTable(svc.HealthyBaseline())

	fmt.Printf("model: %s (%s)\nbaseline: %s\n\n", cfg.Model.Path, cfg.Model.Type, cfg.Model.BaselinePath)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FEATURE\tIMPORTANCE %\tHEALTHY AVG")
	for _, entry := range ranked {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", entry.Name, entry.Importance, baselineByName[entry.Name])
	}
	tw.Flush()

	if *predict == "" {
		return
	}
	x, err := parseVector(*predict)
	if err != nil {
		log.Fatalf("invalid -predict: %v", err)
	}
	p, err := svc.Predict(x)
	if err != nil {
		log.Fatalf("prediction failed: %v", err)
	}
	fmt.Printf("\nprediction=%d riskScore=%.2f riskLevel=%s probability=%.3f healthyProbability=%.3f\n",
		p.Prediction, p.RiskScore, p.RiskLevel, p.Probability, p.HealthyProbability)
}

// baselineTable keys the baseline by training column name.
func baselineTable(b inference.HealthyBaseline) map[string]float64 {
	vec := b.Vector()
	table := make(map[string]float64, ml.FeatureCount)
	for i, name := range ml.FeatureNames() {
		table[name] = vec[i]
	}
	return table
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func parseVector(s string) (ml.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != ml.FeatureCount {
		return ml.Vector{}, fmt.Errorf("%w: got %d values, want %d (%s)",
			ml.ErrFeatureCount, len(parts), ml.FeatureCount, strings.Join(ml.FeatureNames(), ", "))
	}
	var x ml.Vector
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return ml.Vector{}, fmt.Errorf("value %d: %w", i+1, err)
		}
		x[i] = v
	}
	return x, nil
}
