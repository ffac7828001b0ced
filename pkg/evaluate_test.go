package pkg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"featsel/pkg/model"
)

func twoClusterTable(t *testing.T) *model.Table {
	table, err := model.NewTable([][]float64{
		{0, 1.0, 1.0},
		{0, 1.0, 1.1},
		{1, 5.0, 5.0},
		{1, 5.0, 5.1},
	})
	require.NoError(t, err)
	return table
}

func randomRows(seed int64, n, d, classes int) [][]float64 {
	rnd := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, d+1)
		row[0] = float64(rnd.Intn(classes) + 1)
		for j := 1; j <= d; j++ {
			row[j] = rnd.NormFloat64() + row[0]*float64(j%2)
		}
		rows[i] = row
	}
	return rows
}

func randomTable(t *testing.T, seed int64, n, d, classes int) *model.Table {
	table, err := model.NewTable(randomRows(seed, n, d, classes))
	require.NoError(t, err)
	return table
}

func TestEvaluator_TwoClusters(t *testing.T) {
	table := twoClusterTable(t)
	e := NewEvaluator()

	require.Equal(t, 1.0, e.Baseline(table))

	empty := model.NewFeatureSet(table.FeatureCount())
	require.Equal(t, 1.0, e.Evaluate(table, model.Forward, empty, 1))
	require.Equal(t, 1.0, e.Evaluate(table, model.Forward, empty, 2))
	require.Equal(t, 2, e.Calls)
}

func TestEvaluator_BackwardMasksEverything(t *testing.T) {
	table := twoClusterTable(t)
	e := NewEvaluator()

	// Removing {1} and 2 leaves no feature: every distance is 0 and the first other instance wins
	committed := model.NewFeatureSet(2).With(1)
	require.Equal(t, []int{1, 0, 0, 0}, Predict(table, committed.With(2).Active(model.Backward)))
	require.Equal(t, 0.5, e.Evaluate(table, model.Backward, committed, 2))
}

func TestEvaluator_FullCandidateIgnored(t *testing.T) {
	table := twoClusterTable(t)
	e := NewEvaluator()

	// A candidate of d+1 adds nothing: for backward nothing is masked
	empty := model.NewFeatureSet(2)
	require.Equal(t, e.Baseline(table), e.Evaluate(table, model.Backward, empty, 3))
}

func TestEvaluator_SingleInstance(t *testing.T) {
	table, err := model.NewTable([][]float64{{1, 2, 3}})
	require.NoError(t, err)

	require.Equal(t, []int{-1}, Predict(table, []int{1, 2}))
	require.Equal(t, 0.0, NewEvaluator().Baseline(table))
}

func TestEvaluator_OrderIndependent(t *testing.T) {
	rows := randomRows(7, 40, 5, 3)
	reversed := make([][]float64, len(rows))
	for i := range rows {
		reversed[len(rows)-1-i] = rows[i]
	}

	table, err := model.NewTable(rows)
	require.NoError(t, err)
	reversedTable, err := model.NewTable(reversed)
	require.NoError(t, err)

	e := NewEvaluator()
	require.Equal(t, e.Baseline(table), e.Baseline(reversedTable))

	committed := model.NewFeatureSet(5).With(2)
	for _, mode := range []model.Mode{model.Forward, model.Backward} {
		require.Equal(t,
			e.Evaluate(table, mode, committed, 4),
			e.Evaluate(reversedTable, mode, committed, 4))
	}
}

// zeroedDistance computes the distance over the full vectors after zeroing the masked columns.
func zeroedDistance(a, b []float64, active []int) float64 {
	isActive := map[int]bool{}
	for _, j := range active {
		isActive[j] = true
	}
	sum := 0.0
	for j := 1; j <= len(a); j++ {
		x, y := a[j-1], b[j-1]
		if !isActive[j] {
			x, y = 0, 0
		}
		sum += float64((x - y) * (x - y))
	}
	return math.Sqrt(sum)
}

func TestDistance_MatchesColumnZeroing(t *testing.T) {
	table := randomTable(t, 3, 20, 6, 2)
	actives := [][]int{{}, {1}, {2, 5}, {1, 3, 4, 6}, {1, 2, 3, 4, 5, 6}}
	for _, active := range actives {
		for i := 0; i < table.Size(); i++ {
			for k := 0; k < table.Size(); k++ {
				require.Equal(t, zeroedDistance(table.Row(i), table.Row(k), active), distance(table.Row(i), table.Row(k), active))
			}
		}
	}
}

func TestEvaluator_EvaluateSubset(t *testing.T) {
	table := twoClusterTable(t)
	e := NewEvaluator()

	accuracy, err := e.EvaluateSubset(table, []int{2, 2})
	require.NoError(t, err)
	require.Equal(t, 1.0, accuracy)

	accuracy, err = e.EvaluateSubset(table, nil)
	require.NoError(t, err)
	require.Equal(t, 0.5, accuracy)

	_, err = e.EvaluateSubset(table, []int{3})
	require.Error(t, err)
	require.Equal(t, 0, e.Calls)
}
