// Package export renders booking lists as xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	DefaultSheetName = "Bookings"
	ContentType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout       = "2006-01-02 15:04"
)

var headers = []string{"ID", "Item", "Booker", "Start", "End", "Status"}

var statusFills = map[models.BookingStatus]string{
	models.StatusWaiting:  "#FFEB9C",
	models.StatusApproved: "#C6EFCE",
	models.StatusRejected: "#FFC7CE",
	models.StatusCanceled: "#D9D9D9",
}

// WriteBookings writes one row per booking to w, coloring the status cell.
func WriteBookings(w io.Writer, sheetName string, bookings []*models.Booking) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	styles := make(map[models.BookingStatus]int, len(statusFills))
	for status, color := range statusFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("error creating status style: %w", err)
		}
		styles[status] = style
	}

	for i, b := range bookings {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), b.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), itemName(b))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), bookerName(b))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), b.Start.UTC().Format(timeLayout))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), b.End.UTC().Format(timeLayout))

		statusCell := fmt.Sprintf("F%d", row)
		_ = f.SetCellValue(sheetName, statusCell, string(b.Status))
		if style, ok := styles[b.Status]; ok {
			_ = f.SetCellStyle(sheetName, statusCell, statusCell, style)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 18)
	_ = f.SetColWidth(sheetName, "F", "F", 12)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func itemName(b *models.Booking) string {
	if b.Item == nil {
		return fmt.Sprintf("#%d", b.ItemID)
	}
	return b.Item.Name
}

func bookerName(b *models.Booking) string {
	if b.Booker == nil {
		return fmt.Sprintf("#%d", b.BookerID)
	}
	return b.Booker.Name
}
