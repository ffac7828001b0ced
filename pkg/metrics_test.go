package pkg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"featsel/pkg/model"
)

func TestClassMetrics(t *testing.T) {
	table := twoClusterTable(t)

	metrics := ClassMetrics(table, []int{1, 2})
	require.Equal(t, []string{"0", "1"}, sortClasses(metrics))
	for _, m := range metrics {
		require.Equal(t, 2, m.TruePos)
		require.Equal(t, 0, m.FalsePos)
		require.Equal(t, 0, m.FalseNeg)
	}
	macroF1, microF1 := computeOverallF1(metrics)
	require.Equal(t, 1.0, macroF1)
	require.Equal(t, 1.0, microF1)

	// no active feature: instances 2 and 3 are predicted as class 0
	metrics = ClassMetrics(table, nil)
	require.Equal(t, 2, metrics["0"].TruePos)
	require.Equal(t, 2, metrics["0"].FalsePos)
	require.Equal(t, 2, metrics["1"].FalseNeg)
	require.Equal(t, 0, metrics["1"].TruePos)
	LogClassMetrics(metrics)
}

func TestClassMetrics_SingleInstance(t *testing.T) {
	table, err := model.NewTable([][]float64{{2.5, 1}})
	require.NoError(t, err)

	metrics := ClassMetrics(table, []int{1})
	require.Equal(t, []string{"2.5"}, sortClasses(metrics))
	require.Equal(t, 1, metrics["2.5"].FalseNeg)
}
