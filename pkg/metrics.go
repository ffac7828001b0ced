package pkg

import (
	"sort"
	"strconv"

	"github.com/nlpodyssey/spago/pkg/ml/stats"
	"github.com/rs/zerolog/log"

	"featsel/pkg/model"
)

const noPrediction = "none"

// ClassMetrics scores the leave-one-out predictions made with the active features, per class label.
func ClassMetrics(t *model.Table, active []int) map[string]*stats.ClassMetrics {
	metrics := map[string]*stats.ClassMetrics{}
	counter := func(class string) *stats.ClassMetrics {
		m, ok := metrics[class]
		if !ok {
			m = stats.NewMetricCounter()
			metrics[class] = m
		}
		return m
	}

	for i, k := range Predict(t, active) {
		label := className(t.Label(i))
		predicted := noPrediction
		if k >= 0 {
			predicted = className(t.Label(k))
		}

		labelClassMetrics := counter(label)
		if label == predicted {
			labelClassMetrics.IncTruePos()
			continue
		}
		labelClassMetrics.IncFalseNeg()
		if predicted != noPrediction {
			counter(predicted).IncFalsePos()
		}
	}
	return metrics
}

// LogClassMetrics logs precision, recall and F1 of every class, then the overall F1 scores.
func LogClassMetrics(metrics map[string]*stats.ClassMetrics) {
	// Sort class names for deterministic output
	for _, class := range sortClasses(metrics) {
		result := metrics[class]
		log.Info().Str("Class", class).
			Int("TP", result.TruePos).
			Int("FP", result.FalsePos).
			Int("FN", result.FalseNeg).
			Float64("Precision", result.Precision()).
			Float64("Recall", result.Recall()).
			Float64("F1", result.F1Score()).
			Msg("")
	}

	macroF1, microF1 := computeOverallF1(metrics)
	log.Info().Float64("MacroF1", macroF1).Float64("MicroF1", microF1).Msg("")
}

func computeOverallF1(metrics map[string]*stats.ClassMetrics) (float64, float64) {
	if len(metrics) == 0 {
		return 0, 0
	}
	macroF1 := 0.0
	for _, metric := range metrics {
		macroF1 += metric.F1Score()
	}
	macroF1 /= float64(len(metrics))

	micro := stats.NewMetricCounter()
	for _, result := range metrics {
		micro.TruePos += result.TruePos
		micro.FalsePos += result.FalsePos
		micro.FalseNeg += result.FalseNeg
		micro.TrueNeg += result.TrueNeg
	}
	return macroF1, micro.F1Score()
}

func sortClasses(metrics map[string]*stats.ClassMetrics) []string {
	result := make([]string, 0, len(metrics))
	for class := range metrics {
		result = append(result, class)
	}
	sort.Strings(result)
	return result
}

func className(label float64) string {
	return strconv.FormatFloat(label, 'g', -1, 64)
}
