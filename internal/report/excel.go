package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/news-alert/internal/extract"
)

const newsSheet = "News Report"

// buildWorkbook lays the extracted records out as one row per news item
// with a styled header and a hyperlink column.
func buildWorkbook(records []extract.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(newsSheet); index == -1 {
		if _, err := f.NewSheet(newsSheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(newsSheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Title",
		"Country",
		"Source URL",
		"Publication Date",
		"Summary",
		"Key Analysis",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(newsSheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CCE5FF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	_ = f.SetCellStyle(newsSheet, "A1", "F1", headerStyle)

	linkStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "0000FF", Underline: "single"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("link style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("body style: %w", err)
	}

	row := 2
	for _, r := range records {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(newsSheet, cell, v)
		}
		write(1, r.Title)
		write(2, r.Country)
		write(3, r.URL)
		write(4, r.Date)
		write(5, r.Summary)
		write(6, r.Analysis)

		if r.URL != "" {
			cell, _ := excelize.CoordinatesToCellName(3, row)
			_ = f.SetCellHyperLink(newsSheet, cell, r.URL, "External")
		}

		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(6, row)
		_ = f.SetCellStyle(newsSheet, start, end, bodyStyle)
		linkCell, _ := excelize.CoordinatesToCellName(3, row)
		_ = f.SetCellStyle(newsSheet, linkCell, linkCell, linkStyle)

		row++
	}

	_ = f.SetColWidth(newsSheet, "A", "A", 50) // title
	_ = f.SetColWidth(newsSheet, "B", "B", 15) // country
	_ = f.SetColWidth(newsSheet, "C", "C", 60) // url
	_ = f.SetColWidth(newsSheet, "D", "D", 15) // date
	_ = f.SetColWidth(newsSheet, "E", "F", 80) // summary, analysis

	return f, nil
}
