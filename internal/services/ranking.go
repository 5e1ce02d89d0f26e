package services

import (
	"math"

	types "github.com/nivedu/courselink-backend/internal/domain"
)

// Weights of the two score blends. Rank favors quiz accuracy with a progress
// component; level is almost entirely accuracy-driven.
const (
	rankAccuracyWeight = 0.70
	rankProgressWeight = 0.30

	levelAccuracyWeight = 0.90
	levelProgressWeight = 0.10
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// progressPercentage is the share of matched classes the user engaged with,
// in [0,100]. Zero matched classes yields 0, not an error.
func progressPercentage(engaged, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(engaged) / float64(total) * 100)
}

// meanAccuracy averages accuracy over all test results, one row per series
// attempt. No results yields 0.
func meanAccuracy(results []*types.TestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Accuracy
	}
	return round2(sum / float64(len(results)))
}

func rankScore(accuracy, progress float64) float64 {
	return round2(accuracy*rankAccuracyWeight + progress*rankProgressWeight)
}

func levelScore(accuracy, progress float64) float64 {
	return round2(accuracy*levelAccuracyWeight + progress*levelProgressWeight)
}

// levelForScore maps a level score to its tier. Values outside the listed
// ranges, including exactly 40, fall through to Beginner.
func levelForScore(score float64) string {
	switch {
	case score < 40:
		return types.LevelBeginner
	case score > 40 && score < 80:
		return types.LevelMedium
	case score >= 80 && score <= 90:
		return types.LevelAdvanced
	case score > 90 && score <= 100:
		return types.LevelPro
	default:
		return types.LevelBeginner
	}
}
