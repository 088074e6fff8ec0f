package ml

import "math"

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Inclusive lower bounds, percent scale.
const (
	HighRiskThreshold     = 70.0
	ModerateRiskThreshold = 40.0
)

// RiskScore is the disease probability as a percentage, rounded to 2 places.
func RiskScore(diseaseProbability float64) float64 {
	return Round(diseaseProbability*100, 2)
}

// ClassifyRisk maps a percent score onto its tier.
func ClassifyRisk(score float64) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= ModerateRiskThreshold:
		return RiskModerate
	default:
		return RiskLow
	}
}

// Round rounds half away from zero to the given decimal places.
func Round(value float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(value*scale) / scale
}
