// Package spreadsheet decodes uploaded settlement files into ordered raw
// rows keyed by their original column headers. It understands xlsx (first
// sheet, first row as headers) and csv.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/ingest"
)

// ReadRows decodes file content into raw rows. Empty rows are skipped and
// cells beyond the header width are ignored.
func ReadRows(data []byte, fileType domain.FileType) ([]ingest.RawRow, error) {
	switch fileType {
	case domain.FileTypeXLSX:
		return readXLSX(data)
	case domain.FileTypeCSV:
		return readCSV(data)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, fileType)
	}
}

func readXLSX(data []byte) ([]ingest.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rowsFromCells(rows)
}

func readCSV(data []byte) ([]ingest.RawRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rowsFromCells(rows)
}

// rowsFromCells maps each data row onto the header row. Blank headers and
// completely empty rows are dropped.
func rowsFromCells(rows [][]string) ([]ingest.RawRow, error) {
	if len(rows) < 2 {
		return nil, domain.ErrEmptySheet
	}

	headers := rows[0]
	out := make([]ingest.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(ingest.RawRow, len(headers))
		empty := true
		for i, h := range headers {
			if strings.TrimSpace(h) == "" || i >= len(cells) {
				continue
			}
			cell := strings.TrimSpace(cells[i])
			if cell == "" {
				continue
			}
			row[h] = cell
			empty = false
		}
		if !empty {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrEmptySheet
	}
	return out, nil
}
