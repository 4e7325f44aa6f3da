package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lossdesk/models"
)

func sampleReports() []models.Report {
	return []models.Report{
		{
			ID:         2,
			Manager:    "Olga",
			Restaurant: "02 — Almaty",
			Reason:     "breakage",
			Amount:     800,
			StartsAt:   "07.01.2026 10:00",
			EndsAt:     "07.01.2026 12:30",
			Comment:    "tray dropped",
			CreatedAt:  2000,
		},
		{
			ID:         1,
			Manager:    "Ivan",
			Restaurant: "Main Street",
			Reason:     "spill",
			Amount:     1501,
			StartsAt:   "bad",
			EndsAt:     "07.01.2026 11:00",
			CreatedAt:  1000,
		},
	}
}

func TestRowsProjection(t *testing.T) {
	rows := Rows(sampleReports())
	require.Len(t, rows, 2)

	// input order (createdAt desc from the store) is preserved
	assert.Equal(t, "Olga", rows[0].Manager)
	assert.Equal(t, "02", rows[0].RestaurantCode)
	assert.Equal(t, "Almaty", rows[0].RestaurantName)
	require.NotNil(t, rows[0].Duration)
	assert.Equal(t, 2.5, *rows[0].Duration)

	// no code, unparseable start: empty code and absent duration
	assert.Equal(t, "", rows[1].RestaurantCode)
	assert.Equal(t, "Main Street", rows[1].RestaurantName)
	assert.Nil(t, rows[1].Duration)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Rows(sampleReports())))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	for i, want := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		got, err := f.GetCellValue("Sheet1", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Olga", got)
	got, err = f.GetCellValue("Sheet1", "I2")
	require.NoError(t, err)
	assert.Equal(t, "2.5", got)

	// absent duration leaves the cell empty
	got, err = f.GetCellValue("Sheet1", "I3")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "#", got)
}
