// Package export renders a college's applications as an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/xuri/excelize/v2"
)

const applicationsSheet = "Applications"

var applicationColumns = []string{
	"Application ID", "Student", "Email", "Course", "Status", "Payment",
	"Amount Paid", "Exam Date", "Exam Time", "Hostel", "Scholarship", "Applied On",
}

// WriteApplications writes one row per application, in the given order
func WriteApplications(w io.Writer, apps []*model.Application) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", applicationsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(applicationColumns))
	for i, col := range applicationColumns {
		header[i] = col
	}
	if err := file.SetSheetRow(applicationsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(applicationColumns))
	if err := file.SetCellStyle(applicationsSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, app := range apps {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := applicationRow(app)
		if err := file.SetSheetRow(applicationsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := file.SetPanes(applicationsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func applicationRow(app *model.Application) []interface{} {
	var amount interface{} = ""
	if app.AmountPaid != nil {
		amount = *app.AmountPaid
	}
	examDate := ""
	if app.ExamDate != nil {
		examDate = app.ExamDate.Format("2006-01-02")
	}

	return []interface{}{
		app.ID.String(),
		app.StudentName,
		app.StudentEmail,
		app.Course,
		string(app.Status),
		string(app.PaymentStatus),
		amount,
		examDate,
		app.ExamTime,
		yesNo(app.NeedsHostel),
		yesNo(app.NeedsScholarship),
		app.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
