package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrMalformedDataset is returned when the loaded rows cannot form a table.
var ErrMalformedDataset = errors.New("malformed dataset")

// Table is the in-memory labeled dataset. It is never modified after NewTable returns.
type Table struct {
	// Labels holds the class label of every instance (column 0 of the source data)
	Labels []float64

	// Features holds the feature columns 1..d of the source data. Feature j lives in matrix column j-1
	Features *mat.Dense
}

// NewTable builds a table from rows whose first value is the label and the rest are features.
// Every row must have the same length and at least one feature.
func NewTable(rows [][]float64) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no instances", ErrMalformedDataset)
	}
	width := len(rows[0])
	if width < 2 {
		return nil, fmt.Errorf("%w: row 0 has %d values, expected a label and at least one feature", ErrMalformedDataset, width)
	}

	featureCount := width - 1
	labels := make([]float64, len(rows))
	features := mat.NewDense(len(rows), featureCount, nil)
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d", ErrMalformedDataset, i, len(row), width)
		}
		labels[i] = row[0]
		features.SetRow(i, row[1:])
	}
	return &Table{Labels: labels, Features: features}, nil
}

// Size returns the number of instances.
func (t *Table) Size() int {
	return len(t.Labels)
}

// FeatureCount returns d, the number of feature columns (the label excluded).
func (t *Table) FeatureCount() int {
	_, c := t.Features.Dims()
	return c
}

func (t *Table) Label(i int) float64 {
	return t.Labels[i]
}

// Row returns the feature values of instance i. The slice aliases the table and must not be written.
func (t *Table) Row(i int) []float64 {
	return t.Features.RawRowView(i)
}

// Value returns feature j (1-based) of instance i.
func (t *Table) Value(i, j int) float64 {
	return t.Features.At(i, j-1)
}

// Classes returns the distinct labels in order of first appearance.
func (t *Table) Classes() []float64 {
	seen := map[float64]struct{}{}
	var classes []float64
	for _, l := range t.Labels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			classes = append(classes, l)
		}
	}
	return classes
}
