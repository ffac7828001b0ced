package io

import (
	"errors"
	"strings"
	"testing"

	"featsel/pkg/model"

	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	table, dataErrors, err := LoadFile("testdata/small.txt")
	require.NoError(t, err)
	require.Equal(t, 0, len(dataErrors))
	require.Equal(t, 4, table.Size())
	require.Equal(t, 2, table.FeatureCount())
	require.Equal(t, 1.0, table.Label(3))
	require.Equal(t, []float64{5.0, 5.1}, table.Row(3))
}

func TestLoadFile_Missing(t *testing.T) {
	table, _, err := LoadFile("testdata/does-not-exist.txt")
	require.Error(t, err)
	require.Nil(t, table)
	require.Contains(t, err.Error(), "error opening file")
}

func TestLoadData_SkipsAndReports(t *testing.T) {
	input := strings.Join([]string{
		"1 2.5 3",
		"# comment line",
		"",
		"2 4 oops 7",
	}, "\n")

	table, dataErrors, err := LoadData(strings.NewReader(input))
	require.Error(t, err, "the truncated row makes the table ragged")
	require.True(t, errors.Is(err, model.ErrMalformedDataset))
	require.Nil(t, table)
	require.Equal(t, 2, len(dataErrors))
	require.Equal(t, 2, dataErrors[0].Line)
	require.Equal(t, 4, dataErrors[1].Line)
}

func TestLoadData_Malformed(t *testing.T) {
	tests := []string{
		"",
		"1\n2\n",
		"1 2 3\n1 2\n",
	}
	for _, input := range tests {
		_, _, err := LoadData(strings.NewReader(input))
		require.True(t, errors.Is(err, model.ErrMalformedDataset), input)
	}
}
