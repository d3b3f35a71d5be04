package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
)

// transferColumns is the required spreadsheet header, in export order.
// Header matching on import is case-sensitive.
var transferColumns = []string{"name", "address", "phone", "grade", "marks", "marksheet"}

// RowError describes a row that was skipped during import
type RowError struct {
	Row    int
	Reason string
}

// ImportReport summarizes a bulk import. Skipped rows are always reported.
type ImportReport struct {
	Created []*models.StudentRecord
	Errors  []RowError
}

// TransferService converts between the roster and its spreadsheet form
type TransferService interface {
	// Export serializes the roster to an xlsx workbook.
	Export(ctx context.Context) ([]byte, error)
	// Import creates roster entries from an xlsx workbook. Malformed headers
	// abort the import before any record is created; bad rows are skipped
	// and reported.
	Import(ctx context.Context, r io.Reader) (*ImportReport, error)
}

// transferServiceImpl implements the TransferService interface
type transferServiceImpl struct {
	studentRepo RosterStore
}

// NewTransferService creates a new transfer service instance
func NewTransferService(studentRepo RosterStore) TransferService {
	return &transferServiceImpl{
		studentRepo: studentRepo,
	}
}

// Export writes a header row plus one row per student, in roster order
func (s *transferServiceImpl) Export(ctx context.Context) ([]byte, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error exporting students: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(transferColumns))
	for i, col := range transferColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("error writing header row: %w", err)
	}

	for i, st := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("error addressing row: %w", err)
		}
		row := []interface{}{st.Name, st.Address, st.Phone, st.Grade, st.Marks, st.Marksheet}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("error writing student row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error serializing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// Import reads the first sheet of the workbook. The marksheet column is taken
// verbatim as a metadata reference; no file existence check is performed.
func (s *transferServiceImpl) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewMalformedInputError("file is not a readable spreadsheet")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewMalformedInputError("failed to read spreadsheet rows")
	}
	if len(rows) == 0 {
		return nil, apperrors.NewMalformedInputError("spreadsheet has no header row")
	}

	colIndex, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // spreadsheet row number, 1-based with header

		if isBlankRow(row) {
			continue
		}

		marksText := strings.TrimSpace(cellAt(row, colIndex["marks"]))
		marks, err := strconv.Atoi(marksText)
		if err != nil {
			report.Errors = append(report.Errors, RowError{
				Row:    rowNum,
				Reason: fmt.Sprintf("marks %q is not a number", marksText),
			})
			continue
		}

		student := &models.StudentRecord{
			Name:      cellAt(row, colIndex["name"]),
			Address:   cellAt(row, colIndex["address"]),
			Phone:     cellAt(row, colIndex["phone"]),
			Grade:     cellAt(row, colIndex["grade"]),
			Marks:     marks,
			Marksheet: cellAt(row, colIndex["marksheet"]),
		}

		if _, err := s.studentRepo.Create(ctx, student); err != nil {
			return report, fmt.Errorf("error importing row %d: %w", rowNum, err)
		}
		report.Created = append(report.Created, student)
	}

	return report, nil
}

// mapColumns resolves each required column to its index in the header row
func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(transferColumns))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range transferColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMalformedInputError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	return index, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
