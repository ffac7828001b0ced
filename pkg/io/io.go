package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"featsel/pkg/model"
)

type DataError struct {
	Line  int
	Error string
}

// LoadFile opens a whitespace-delimited numeric file and loads it into a table.
func LoadFile(fileName string) (*model.Table, []DataError, error) {
	inputFile, err := os.Open(fileName)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening file: %w", err)
	}
	defer inputFile.Close()

	return LoadData(inputFile)
}

// LoadData reads one instance per line: the class label followed by the feature values.
// Reading a line stops at the first token that is not a number. Lines without any number are skipped,
// lines cut short by a bad token are kept and reported as data errors.
func LoadData(input io.Reader) (*model.Table, []DataError, error) {
	var errors []DataError
	var rows [][]float64

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	currentLine := 0
	for scanner.Scan() {
		currentLine++
		row, err := parseLine(scanner.Text())
		if err != nil {
			errors = append(errors, DataError{
				Line:  currentLine,
				Error: err.Error(),
			})
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors, fmt.Errorf("error reading data: %w", err)
	}

	table, err := model.NewTable(rows)
	if err != nil {
		return nil, errors, err
	}
	return table, errors, nil
}

func parseLine(line string) ([]float64, error) {
	fields := strings.Fields(line)
	row := make([]float64, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return row, fmt.Errorf("error parsing value %q after %d values: %w", field, len(row), err)
		}
		row = append(row, value)
	}
	return row, nil
}
