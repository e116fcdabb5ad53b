package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseRows converts raw file bytes into ordered RawRows, keyed by the
// header row. The format is picked from the file name's extension:
// .csv is read as delimited text, .xls/.xlsx as the first worksheet of a
// workbook. Fully blank rows are skipped.
func ParseRows(data []byte, fileName string) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return parseCSV(data)
	case ".xls", ".xlsx":
		return parseWorkbook(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, fileName)
	}
}

func parseCSV(data []byte) ([]RawRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows are padded below

	headers, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	var rows []RawRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV row %d: %w", len(rows)+1, err)
		}
		if row, ok := buildRow(headers, record); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func parseWorkbook(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := records[0]
	var rows []RawRow
	for _, record := range records[1:] {
		if row, ok := buildRow(headers, record); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// buildRow zips headers with cells, padding short records with blanks.
// Returns ok=false when every cell is blank.
func buildRow(headers, record []string) (RawRow, bool) {
	row := make(RawRow, len(headers))
	blank := true
	for i, h := range headers {
		key := strings.TrimSpace(h)
		if key == "" {
			continue
		}
		var v string
		if i < len(record) {
			v = record[i]
		}
		if strings.TrimSpace(v) != "" {
			blank = false
		}
		row[key] = v
	}
	if blank {
		return nil, false
	}
	return row, true
}
