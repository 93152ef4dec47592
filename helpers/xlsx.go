package helpers

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// XLSX HELPER — Reads one worksheet into a schema.Result
// ============================================================================
// The first row is the header. Cells are read as displayed text and typed
// the same way CSV cells are.
// ============================================================================

// LoadXLSX reads sheet from the workbook at path. An empty sheet name
// selects the first sheet.
func LoadXLSX(path, sheet string) (*schema.Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()
	return readSheet(f, sheet)
}

// ParseXLSX is LoadXLSX for a workbook already in memory or on the wire.
func ParseXLSX(r io.Reader, sheet string) (*schema.Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read excel data: %w", err)
	}
	defer f.Close()
	return readSheet(f, sheet)
}

// SheetNames lists the workbook's sheets in tab order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func readSheet(f *excelize.File, sheet string) (*schema.Result, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets found in excel file")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	return schema.DiscoverFromRecords(rows[0], rows[1:])
}
