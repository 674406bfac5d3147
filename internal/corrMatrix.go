package internal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CorrMatrix is a square correlation table indexed and columned by raw
// counterparty names. Cells stay raw strings; numeric parsing happens per
// cell during the graph scan so one bad cell is a skip, never a failure.
//
// The matrix header is data-dependent (one column per counterparty), which is
// why this file reads with encoding/csv instead of gocsv struct tags.
type CorrMatrix struct {
	Index   []string
	Columns []string
	Cells   [][]string
}

func LoadCorrMatrix(path string) (*CorrMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &SourceNotFoundError{Source: "correlations", Path: path}
		}
		return nil, fmt.Errorf("unable to read correlations file %s due to: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse correlations file %s due to: %w", path, err)
	}
	if len(records) == 0 {
		return &CorrMatrix{}, nil
	}

	// first header cell is the index-column label, the rest are counterparties
	columns := make([]string, 0, len(records[0])-1)
	for _, column := range records[0][1:] {
		columns = append(columns, strings.TrimSpace(column))
	}

	matrix := &CorrMatrix{
		Index:   make([]string, 0, len(records)-1),
		Columns: columns,
		Cells:   make([][]string, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		matrix.Index = append(matrix.Index, strings.TrimSpace(record[0]))
		matrix.Cells = append(matrix.Cells, record[1:])
	}
	return matrix, nil
}

// Cell returns the raw cell at row i, column j, or "" when the row is ragged.
func (m *CorrMatrix) Cell(i, j int) string {
	if i < 0 || i >= len(m.Cells) || j < 0 || j >= len(m.Cells[i]) {
		return ""
	}
	return m.Cells[i][j]
}
