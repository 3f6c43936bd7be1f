package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

type stubStore struct {
	domain.LeadStore
	leads      []domain.Lead
	lastFilter domain.LeadFilter
}

func (s *stubStore) ListLeads(_ context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	s.lastFilter = filter
	return s.leads, nil
}

func sampleLeads() []domain.Lead {
	score := 82
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return []domain.Lead{
		{
			ID:         "rec1",
			Name:       "Ada Chen",
			Email:      "ada@acme.com",
			Company:    "Acme Corp",
			Source:     domain.SourceReferral,
			Status:     domain.StatusQualified,
			Score:      &score,
			ScoreLabel: domain.LabelHot,
			CallStatus: domain.CallScheduled,
			CreatedAt:  &created,
		},
		{
			ID:     "rec2",
			Name:   "Sam Doe",
			Email:  "sam@example.com",
			Status: domain.StatusNew,
		},
	}
}

func TestFormat(t *testing.T) {
	assert.True(t, FormatCSV.Valid())
	assert.True(t, FormatExcel.Valid())
	assert.False(t, Format("pdf").Valid())

	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Equal(t, "csv", FormatCSV.Extension())
	assert.Equal(t, "xlsx", FormatExcel.Extension())
}

func TestExport_InvalidFormat(t *testing.T) {
	service := NewService(&stubStore{})

	var buf bytes.Buffer
	_, err := service.Export(context.Background(), &buf, Format("pdf"), domain.LeadFilter{})
	require.Error(t, err)
	assert.True(t, domain.IsBadRequest(err))
}

func TestExport_CSV(t *testing.T) {
	store := &stubStore{leads: sampleLeads()}
	service := NewService(store)

	var buf bytes.Buffer
	count, err := service.Export(context.Background(), &buf, FormatCSV, domain.LeadFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "rec1", rows[1][0])
	assert.Equal(t, "Ada Chen", rows[1][1])
	assert.Equal(t, "82", rows[1][9])
	assert.Equal(t, "Hot", rows[1][10])
	assert.Equal(t, "2026-08-01T10:00:00Z", rows[1][14])

	// Missing optional values export as empty cells
	assert.Equal(t, "", rows[2][9])
	assert.Equal(t, "", rows[2][14])
}

func TestExport_Excel(t *testing.T) {
	store := &stubStore{leads: sampleLeads()}
	service := NewService(store)

	var buf bytes.Buffer
	count, err := service.Export(context.Background(), &buf, FormatExcel, domain.LeadFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leads")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Ada Chen", rows[1][1])
}

func TestExport_CapsMaxRecords(t *testing.T) {
	store := &stubStore{}
	service := NewService(store)

	var buf bytes.Buffer
	_, err := service.Export(context.Background(), &buf, FormatCSV, domain.LeadFilter{})
	require.NoError(t, err)
	assert.Equal(t, maxExportLeads, store.lastFilter.MaxRecords)

	_, err = service.Export(context.Background(), &buf, FormatCSV, domain.LeadFilter{MaxRecords: 50})
	require.NoError(t, err)
	assert.Equal(t, 50, store.lastFilter.MaxRecords)
}

func TestFilename(t *testing.T) {
	assert.Regexp(t, `^leads-\d{8}-\d{6}\.csv$`, Filename(FormatCSV))
	assert.Regexp(t, `^leads-\d{8}-\d{6}\.xlsx$`, Filename(FormatExcel))
}
