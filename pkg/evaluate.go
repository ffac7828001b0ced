package pkg

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"featsel/pkg/model"
)

// Evaluator scores feature subsets by leave-one-out 1-nearest-neighbor accuracy.
// It only reads the table, so one Evaluator can serve a whole search.
type Evaluator struct {
	// Calls counts the Evaluate invocations made so far
	Calls int
}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns the accuracy of committed ∪ {candidate}, read under mode:
// for Forward the trial set lists the features used, for Backward the features left out.
// A candidate outside [1, d] adds nothing to the trial set.
func (e *Evaluator) Evaluate(t *model.Table, mode model.Mode, committed model.FeatureSet, candidate int) float64 {
	e.Calls++
	trial := committed.With(candidate)
	return accuracy(t, Predict(t, trial.Active(mode)))
}

// Baseline returns the accuracy with every feature in use.
func (e *Evaluator) Baseline(t *model.Table) float64 {
	return accuracy(t, Predict(t, allFeatures(t.FeatureCount())))
}

// EvaluateSubset returns the accuracy using only the given features.
func (e *Evaluator) EvaluateSubset(t *model.Table, features []int) (float64, error) {
	active, err := normalizeFeatures(features, t.FeatureCount())
	if err != nil {
		return 0, err
	}
	return accuracy(t, Predict(t, active)), nil
}

// Predict returns, for every instance, the index of its nearest other instance measured over
// the active feature columns, or -1 when there is none. Exact distance ties keep the lowest index.
func Predict(t *model.Table, active []int) []int {
	n := t.Size()
	neighbors := make([]int, n)
	distances := make([]float64, n)
	for i := 0; i < n; i++ {
		row := t.Row(i)
		for k := 0; k < n; k++ {
			if k == i {
				distances[k] = math.Inf(1)
				continue
			}
			distances[k] = distance(row, t.Row(k), active)
		}
		nearest := -1
		if n > 1 {
			nearest = floats.MinIdx(distances)
			if math.IsInf(distances[nearest], 1) || math.IsNaN(distances[nearest]) {
				nearest = -1
			}
		}
		neighbors[i] = nearest
	}
	return neighbors
}

// distance is the Euclidean distance over the active 1-based feature columns.
// Skipped columns would only add 0 to the sum, so the result matches the distance over
// the full vector with the inactive columns zeroed.
func distance(a, b []float64, active []int) float64 {
	sum := 0.0
	for _, j := range active {
		diff := a[j-1] - b[j-1]
		// the conversion rounds the product, ruling out a fused multiply-add
		sum += float64(diff * diff)
	}
	return math.Sqrt(sum)
}

func accuracy(t *model.Table, neighbors []int) float64 {
	correct := 0
	for i, k := range neighbors {
		if k >= 0 && t.Label(k) == t.Label(i) {
			correct++
		}
	}
	return float64(correct) / float64(t.Size())
}

func allFeatures(featureCount int) []int {
	features := make([]int, featureCount)
	for i := range features {
		features[i] = i + 1
	}
	return features
}

func normalizeFeatures(features []int, featureCount int) ([]int, error) {
	seen := map[int]bool{}
	result := make([]int, 0, len(features))
	for _, f := range features {
		if f < 1 || f > featureCount {
			return nil, fmt.Errorf("feature %d out of range [1, %d]", f, featureCount)
		}
		if !seen[f] {
			seen[f] = true
			result = append(result, f)
		}
	}
	sort.Ints(result)
	return result, nil
}
