package pkg

import (
	"encoding/csv"
	"fmt"
	gio "io"
	"strconv"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"featsel/pkg/model"
)

// Reporter receives the progress of a search.
type Reporter interface {
	Baseline(instances, features int, accuracy float64)
	Candidate(level int, features []int, accuracy float64)
	// Level is called once a feature is committed; last is true for the final level
	Level(mode model.Mode, result LevelResult, last bool)
	Finish(result *Result)
}

type NoopReporter struct{}

func (NoopReporter) Baseline(int, int, float64) {}
func (NoopReporter) Candidate(int, []int, float64) {}
func (NoopReporter) Level(model.Mode, LevelResult, bool) {}
func (NoopReporter) Finish(*Result) {}

type MultiReporter []Reporter

func (m MultiReporter) Baseline(instances, features int, accuracy float64) {
	for _, r := range m {
		r.Baseline(instances, features, accuracy)
	}
}

func (m MultiReporter) Candidate(level int, features []int, accuracy float64) {
	for _, r := range m {
		r.Candidate(level, features, accuracy)
	}
}

func (m MultiReporter) Level(mode model.Mode, result LevelResult, last bool) {
	for _, r := range m {
		r.Level(mode, result, last)
	}
}

func (m MultiReporter) Finish(result *Result) {
	for _, r := range m {
		r.Finish(result)
	}
}

// TextReporter prints the search as a human readable transcript.
type TextReporter struct {
	Out gio.Writer
	// Precision is the number of decimals of the percentages; a negative value prints up to 6 significant digits
	Precision int
}

func NewTextReporter(out gio.Writer, precision int) *TextReporter {
	return &TextReporter{Out: out, Precision: precision}
}

func (r *TextReporter) percent(accuracy float64) string {
	if r.Precision < 0 {
		return strconv.FormatFloat(accuracy*100, 'g', 6, 64) + "%"
	}
	return strconv.FormatFloat(accuracy*100, 'f', r.Precision, 64) + "%"
}

func (r *TextReporter) Baseline(instances, features int, accuracy float64) {
	fmt.Fprintf(r.Out, "This dataset has %d features (not including the class attribute), with %d instances.\n", features, instances)
	fmt.Fprintf(r.Out, "Running nearest neighbor with all %d features, using \"leaving-one-out\" evaluation, I get an accuracy of %s\n", features, r.percent(accuracy))
	fmt.Fprintln(r.Out, "Beginning search.")
}

func (r *TextReporter) Candidate(level int, features []int, accuracy float64) {
	fmt.Fprintf(r.Out, "     Using feature(s) %s accuracy is %s\n", model.Format(features), r.percent(accuracy))
}

func (r *TextReporter) Level(mode model.Mode, result LevelResult, last bool) {
	if last {
		return
	}
	if result.Decreased {
		fmt.Fprintln(r.Out, "(Warning, Accuracy has decreased! Continuing search in case of local maxima)")
	}
	fmt.Fprintf(r.Out, "Feature set %s was the best, accuracy is %s\n", model.Format(result.Features(mode)), r.percent(result.Accuracy))
}

func (r *TextReporter) Finish(result *Result) {
	fmt.Fprintf(r.Out, "Finished search!! The best feature subset is %s, which has an accuracy of %s\n",
		model.Format(result.BestFeatures()), r.percent(result.BestAccuracy))
}

// LogReporter logs the search through zerolog at debug level.
type LogReporter struct {
	levelAccuracies []float64
}

func (r *LogReporter) Baseline(instances, features int, accuracy float64) {
	log.Debug().Int("Instances", instances).Int("Features", features).Float64("Accuracy", accuracy).Msg("Baseline")
}

func (r *LogReporter) Candidate(level int, features []int, accuracy float64) {
	r.levelAccuracies = append(r.levelAccuracies, accuracy)
	log.Debug().Int("Level", level).Str("Features", model.Format(features)).Float64("Accuracy", accuracy).Msg("Candidate")
}

func (r *LogReporter) Level(mode model.Mode, result LevelResult, last bool) {
	event := log.Debug().
		Int("Level", result.Level).
		Int("Feature", result.Feature).
		Str("Features", model.Format(result.Features(mode))).
		Float64("Accuracy", result.Accuracy).
		Float64("CandidateMean", stat.Mean(r.levelAccuracies, nil))
	if len(r.levelAccuracies) > 1 {
		event = event.Float64("CandidateStdDev", stat.StdDev(r.levelAccuracies, nil))
	}
	event.Msg("Level")
	if result.Decreased && !last {
		log.Debug().Int("Level", result.Level).Msg("Accuracy has decreased, continuing search in case of local maxima")
	}
	r.levelAccuracies = r.levelAccuracies[:0]
}

func (r *LogReporter) Finish(result *Result) {
	log.Debug().
		Str("Mode", result.Mode.String()).
		Str("Features", model.Format(result.BestFeatures())).
		Float64("Accuracy", result.BestAccuracy).
		Msg("Finished search")
}

// WriteReport writes one CSV row per level followed by the best subset.
func WriteReport(w gio.Writer, result *Result) error {
	writer := csv.NewWriter(w)
	records := [][]string{{"level", "feature", "accuracy", "features", "decreased"}}
	for _, l := range result.Levels {
		records = append(records, []string{
			strconv.Itoa(l.Level),
			strconv.Itoa(l.Feature),
			strconv.FormatFloat(l.Accuracy, 'f', -1, 64),
			model.Format(l.Features(result.Mode)),
			strconv.FormatBool(l.Decreased),
		})
	}
	records = append(records, []string{
		"best",
		"",
		strconv.FormatFloat(result.BestAccuracy, 'f', -1, 64),
		model.Format(result.BestFeatures()),
		"",
	})
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
