package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"marketdoctors.com/admin-gateway/internal/normalize"
)

// rosterHeader is the column order for both roster formats.
var rosterHeader = []string{
	"ID",
	"Full Name",
	"Email",
	"Phone",
	"Gender",
	"Specialisation",
	"Years of Experience",
	"Languages",
	"Facility",
	"Confirmed",
	"Joined",
}

func rosterRow(p normalize.Person) []string {
	confirmed := "no"
	if p.Confirmed {
		confirmed = "yes"
	}
	return []string{
		fmt.Sprintf("%d", p.ID),
		p.FullName,
		p.Email,
		p.Phone,
		p.Gender,
		strings.Join(p.Specialisation, "; "),
		fmt.Sprintf("%d", p.YearsOfExperience),
		strings.Join(p.Languages, "; "),
		p.Facility,
		confirmed,
		p.CreatedAt,
	}
}

// RosterCSV renders a roster of people as CSV with a header row.
func RosterCSV(people []normalize.Person) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(rosterHeader); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for _, p := range people {
		if err := writer.Write(rosterRow(p)); err != nil {
			return nil, fmt.Errorf("failed to write roster row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush roster: %w", err)
	}
	return buf.Bytes(), nil
}

// RosterXLSX renders a roster of people as an Excel workbook with a styled,
// frozen header row.
func RosterXLSX(sheetName string, people []normalize.Person) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, WriteTo needs the file to be open

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range rosterHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, p := range people {
		for colIdx, value := range rosterRow(p) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
