// Package export projects stored reports into spreadsheet rows and encodes
// them as an XLSX workbook.
package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"lossdesk/models"
	"lossdesk/pkg/derive"
)

// Row is one spreadsheet line. Duration is nil when either timestamp of the
// report does not parse; the cell then stays empty rather than showing a
// misleading zero.
type Row struct {
	Manager        string
	RestaurantCode string
	RestaurantName string
	Reason         string
	Amount         int64
	Start          string
	End            string
	Duration       *float64
	Comment        string
}

// Headers is the fixed column order of the workbook.
var Headers = []string{"#", "Manager", "Code", "Restaurant", "Reason", "Amount", "Start", "End", "Hours", "Comment"}

// ContentType is the MIME type of the produced file.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Rows projects stored reports into export rows, applying the same duration
// and restaurant-split rules the live API uses. Input order is preserved:
// the store already yields rows createdAt-descending and the export keeps
// that sort.
func Rows(reports []models.Report) []Row {
	rows := make([]Row, 0, len(reports))
	for _, r := range reports {
		code, name := derive.SplitRestaurant(r.Restaurant)
		row := Row{
			Manager:        r.Manager,
			RestaurantCode: code,
			RestaurantName: name,
			Reason:         r.Reason,
			Amount:         r.Amount,
			Start:          r.StartsAt,
			End:            r.EndsAt,
			Comment:        r.Comment,
		}
		if h, ok := derive.DurationHours(r.StartsAt, r.EndsAt); ok {
			row.Duration = &h
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteXLSX encodes rows as a single-sheet workbook on w.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, r := range rows {
		values := []any{i + 1, r.Manager, r.RestaurantCode, r.RestaurantName, r.Reason, r.Amount, r.Start, r.End, nil, r.Comment}
		if r.Duration != nil {
			values[8] = *r.Duration
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}
