package pkg

import (
	"fmt"

	"featsel/pkg/model"
)

// LevelResult describes the feature committed at one level of a greedy search.
type LevelResult struct {
	Level    int
	Feature  int
	Accuracy float64

	// Committed is the cumulative set after this level: included features for a forward search,
	// removed features for a backward one
	Committed model.FeatureSet

	// Decreased is set when the level did not improve on the best accuracy seen so far
	Decreased bool
}

// Features returns the features in use after the level, in display order.
func (l LevelResult) Features(mode model.Mode) []int {
	return displayed(mode, l.Committed)
}

type Result struct {
	Mode      model.Mode
	Instances int
	Baseline  float64
	Levels    []LevelResult

	// Best is the committed set of the best level, in the same form as LevelResult.Committed
	Best         model.FeatureSet
	BestAccuracy float64
}

// BestFeatures returns the features in use for the best subset found.
func (r *Result) BestFeatures() []int {
	return displayed(r.Mode, r.Best)
}

type Searcher struct {
	table     *model.Table
	evaluator *Evaluator
	reporter  Reporter
}

func NewSearcher(table *model.Table, evaluator *Evaluator, reporter Reporter) *Searcher {
	if reporter == nil {
		reporter = NoopReporter{}
	}
	return &Searcher{table: table, evaluator: evaluator, reporter: reporter}
}

// Search runs a greedy forward selection or backward elimination over every feature of the table.
func Search(table *model.Table, mode model.Mode, reporter Reporter) (*Result, error) {
	return NewSearcher(table, NewEvaluator(), reporter).Run(mode)
}

// Run performs d levels. Each level evaluates every feature not committed yet, in ascending order,
// and commits the one with the highest accuracy (the first one on ties). The search never stops
// early: a level that does not improve is only flagged, and the best level overall is kept.
func (s *Searcher) Run(mode model.Mode) (*Result, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedMode, mode)
	}

	featureCount := s.table.FeatureCount()
	result := &Result{
		Mode:         mode,
		Instances:    s.table.Size(),
		Baseline:     s.evaluator.Baseline(s.table),
		Best:         model.NewFeatureSet(featureCount),
		BestAccuracy: -1,
	}
	s.reporter.Baseline(result.Instances, featureCount, result.Baseline)

	committed := model.NewFeatureSet(featureCount)
	for level := 1; level <= featureCount; level++ {
		featureToCommit := -1
		bestSoFar := -1.0
		for k := 1; k <= featureCount; k++ {
			if committed.Contains(k) {
				continue
			}
			accuracy := s.evaluator.Evaluate(s.table, mode, committed, k)
			s.reporter.Candidate(level, candidateFeatures(mode, committed, k), accuracy)
			if accuracy > bestSoFar {
				bestSoFar = accuracy
				featureToCommit = k
			}
		}

		committed = committed.With(featureToCommit)
		levelResult := LevelResult{
			Level:     level,
			Feature:   featureToCommit,
			Accuracy:  bestSoFar,
			Committed: committed,
		}
		if bestSoFar > result.BestAccuracy {
			result.BestAccuracy = bestSoFar
			result.Best = committed
		} else {
			levelResult.Decreased = true
		}
		result.Levels = append(result.Levels, levelResult)
		s.reporter.Level(mode, levelResult, level == featureCount)
	}

	s.reporter.Finish(result)
	return result, nil
}

// candidateFeatures returns the features in use when k is tried on top of committed.
// Forward lists k first, then the committed order; backward lists what remains, ascending.
func candidateFeatures(mode model.Mode, committed model.FeatureSet, k int) []int {
	if mode == model.Backward {
		return committed.With(k).Complement()
	}
	return append([]int{k}, committed.Order()...)
}

func displayed(mode model.Mode, committed model.FeatureSet) []int {
	if mode == model.Backward {
		return committed.Complement()
	}
	return committed.Order()
}
