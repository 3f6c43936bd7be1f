package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

// Format selects the export file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// Valid reports whether the format is supported.
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatExcel
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatExcel {
		return "xlsx"
	}
	return "csv"
}

const maxExportLeads = 10000

var headers = []string{
	"ID", "Name", "Email", "Phone", "Company", "Title", "LinkedIn",
	"Lead Source", "Status", "Score", "Score Label", "Insights",
	"Suggested Next Step", "Call Status", "Created At",
}

// Service writes lead snapshots as downloadable files.
type Service struct {
	store domain.LeadStore
}

// NewService creates a new export service.
func NewService(store domain.LeadStore) *Service {
	return &Service{store: store}
}

// Export fetches leads matching the filter and writes them to w in the given
// format. Returns the number of leads written.
func (s *Service) Export(ctx context.Context, w io.Writer, format Format, filter domain.LeadFilter) (int, error) {
	if !format.Valid() {
		return 0, domain.NewBadRequestError("invalid format: must be csv or excel")
	}

	if filter.MaxRecords == 0 || filter.MaxRecords > maxExportLeads {
		filter.MaxRecords = maxExportLeads
	}

	leads, err := s.store.ListLeads(ctx, filter)
	if err != nil {
		return 0, err
	}

	if format == FormatExcel {
		err = writeExcel(w, leads)
	} else {
		err = writeCSV(w, leads)
	}
	if err != nil {
		return 0, err
	}
	return len(leads), nil
}

// Filename builds a timestamped download name.
func Filename(format Format) string {
	return fmt.Sprintf("leads-%s.%s", time.Now().Format("20060102-150405"), format.Extension())
}

// writeCSV writes leads as CSV
func writeCSV(w io.Writer, leads []domain.Lead) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, lead := range leads {
		if err := writer.Write(leadRow(lead)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return writer.Error()
}

// writeExcel writes leads as an Excel workbook
func writeExcel(w io.Writer, leads []domain.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leads"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, lead := range leads {
		for colIdx, value := range leadRow(lead) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to build cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column: %w", err)
		}
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func leadRow(lead domain.Lead) []string {
	score := ""
	if lead.Score != nil {
		score = strconv.Itoa(*lead.Score)
	}
	created := ""
	if lead.CreatedAt != nil {
		created = lead.CreatedAt.Format(time.RFC3339)
	}
	return []string{
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Title,
		lead.LinkedInURL,
		string(lead.Source),
		string(lead.Status),
		score,
		string(lead.ScoreLabel),
		lead.Insights,
		lead.SuggestedNextStep,
		string(lead.CallStatus),
		created,
	}
}
