package spreadsheet_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/spreadsheet"
)

func TestReadRows_CSV(t *testing.T) {
	data := []byte("Order ID,Sale Amount,Notes\nOD1,450.5,first\nOD2,100,\n")

	rows, err := spreadsheet.ReadRows(data, domain.FileTypeCSV)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "OD1", rows[0]["Order ID"])
	assert.Equal(t, "450.5", rows[0]["Sale Amount"])
	assert.Equal(t, "first", rows[0]["Notes"])

	assert.Equal(t, "OD2", rows[1]["Order ID"])
	// Blank cells are dropped rather than stored as empty strings.
	assert.NotContains(t, rows[1], "Notes")
}

func TestReadRows_CSVRaggedRows(t *testing.T) {
	data := []byte("A,B,C\n1,2\n4,5,6,7\n")

	rows, err := spreadsheet.ReadRows(data, domain.FileTypeCSV)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2", rows[0]["B"])
	assert.NotContains(t, rows[0], "C")
	// Cells beyond the header width are discarded.
	assert.Equal(t, "6", rows[1]["C"])
}

func TestReadRows_CSVEmptySheet(t *testing.T) {
	_, err := spreadsheet.ReadRows([]byte(""), domain.FileTypeCSV)
	assert.ErrorIs(t, err, domain.ErrEmptySheet)

	_, err = spreadsheet.ReadRows([]byte("Order ID,Sale Amount\n"), domain.FileTypeCSV)
	assert.ErrorIs(t, err, domain.ErrEmptySheet)
}

func TestReadRows_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Order ID", "Sale Amount"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"OD1", 450.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"OD2", 100}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := spreadsheet.ReadRows(buf.Bytes(), domain.FileTypeXLSX)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "OD1", rows[0]["Order ID"])
	assert.Equal(t, "450.5", rows[0]["Sale Amount"])
}

func TestReadRows_XLSXEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := spreadsheet.ReadRows(buf.Bytes(), domain.FileTypeXLSX)
	assert.ErrorIs(t, err, domain.ErrEmptySheet)
}

func TestReadRows_UnknownFileType(t *testing.T) {
	_, err := spreadsheet.ReadRows([]byte("x"), domain.FileType("pdf"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}
