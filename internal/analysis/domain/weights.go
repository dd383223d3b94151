package domain

import "math"

// weightTolerance is the floating tolerance for the weight-sum check.
const weightTolerance = 1e-6

// ScoreWeights tunes how the composite productivity score combines its
// inputs. The three weights must sum to 1.0.
type ScoreWeights struct {
	Urgency    float64
	Importance float64
	Effort     float64
}

// DefaultScoreWeights returns the standard 0.4/0.4/0.2 weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Urgency: 0.4, Importance: 0.4, Effort: 0.2}
}

// Validate checks that the weights form a convex combination.
func (w ScoreWeights) Validate() error {
	sum := w.Urgency + w.Importance + w.Effort
	if math.Abs(sum-1.0) > weightTolerance {
		return &InvalidConfigurationError{Sum: sum}
	}
	return nil
}
