package pkg

import (
	"fmt"
	gio "io"
	"os"

	"github.com/rs/zerolog/log"

	"featsel/pkg/io"
	"featsel/pkg/model"
)

type SelectionParameters struct {
	DataFile string
	Mode     model.Mode
	// Precision is the number of decimals of printed percentages, negative for the default format
	Precision int
	// ReportFile receives a CSV summary of the search when set
	ReportFile string
	// ClassMetrics enables per-class metrics of the best subset
	ClassMetrics bool
}

// Select loads the data file, runs the requested search and prints its transcript to out.
func Select(p SelectionParameters, out gio.Writer) (*Result, error) {
	if !p.Mode.Valid() {
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedMode, p.Mode)
	}

	table, dataErrors, err := io.LoadFile(p.DataFile)
	printDataErrors(dataErrors)
	if err != nil {
		return nil, fmt.Errorf("error loading data from %s: %w", p.DataFile, err)
	}
	log.Debug().Str("File", p.DataFile).Int("Instances", table.Size()).Int("Features", table.FeatureCount()).
		Int("Classes", len(table.Classes())).Msg("Loaded data")

	reporter := MultiReporter{NewTextReporter(out, p.Precision), &LogReporter{}}
	result, err := Search(table, p.Mode, reporter)
	if err != nil {
		return nil, err
	}

	if p.ReportFile != "" {
		if err := writeReportFile(p.ReportFile, result); err != nil {
			return result, err
		}
	}

	if p.ClassMetrics {
		LogClassMetrics(ClassMetrics(table, result.Best.Active(result.Mode)))
	}
	return result, nil
}

// EvaluateFile returns the leave-one-out accuracy of the data file using only the given features,
// or all of them when features is empty.
func EvaluateFile(dataFile string, features []int) (float64, error) {
	table, dataErrors, err := io.LoadFile(dataFile)
	printDataErrors(dataErrors)
	if err != nil {
		return 0, fmt.Errorf("error loading data from %s: %w", dataFile, err)
	}

	evaluator := NewEvaluator()
	if len(features) == 0 {
		return evaluator.Baseline(table), nil
	}
	accuracy, err := evaluator.EvaluateSubset(table, features)
	if err != nil {
		return 0, err
	}
	log.Debug().Str("Features", model.Format(features)).Float64("Accuracy", accuracy).Msg("Evaluated subset")
	return accuracy, nil
}

func writeReportFile(fileName string, result *Result) error {
	outputFile, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("error creating report file %s: %w", fileName, err)
	}
	defer outputFile.Close()

	return WriteReport(outputFile, result)
}
