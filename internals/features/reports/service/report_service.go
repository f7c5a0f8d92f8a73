// Package service renders read-side reports from persisted state. It
// never touches the workflow engine; finalized rows are queried directly.
package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type attendanceRow struct {
	Name         string
	Region       *string
	CheckInTime  time.Time
	CheckOutTime *time.Time
}

// AttendanceExcel renders one row per check-in for the given month.
func AttendanceExcel(db *gorm.DB, month time.Time, region string) (*bytes.Buffer, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	q := db.Table("attendance").
		Select("u.name, u.region, attendance.check_in_time, attendance.check_out_time").
		Joins("JOIN users u ON u.id = attendance.user_id").
		Where("attendance.check_in_time >= ? AND attendance.check_in_time < ?", start, end)
	if region != "" {
		q = q.Where("u.region = ?", region)
	}

	var rows []attendanceRow
	if err := q.Order("u.name asc, attendance.check_in_time asc").Scan(&rows).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee", "Region", "Date", "Check-in", "Check-out", "Hours"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		region := ""
		if row.Region != nil {
			region = *row.Region
		}
		checkOut := ""
		hours := ""
		if row.CheckOutTime != nil {
			checkOut = row.CheckOutTime.Format("15:04")
			hours = fmt.Sprintf("%.2f", row.CheckOutTime.Sub(row.CheckInTime).Hours())
		}

		values := []interface{}{
			row.Name,
			region,
			row.CheckInTime.Format("2006-01-02"),
			row.CheckInTime.Format("15:04"),
			checkOut,
			hours,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f.WriteToBuffer()
}

type vacationRow struct {
	UserName        string
	Region          *string
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	ReplacementName string
	AdminComment    *string
}

// VacationsPDF summarizes the year's finalized vacation requests.
func VacationsPDF(db *gorm.DB, year int, region string) (*bytes.Buffer, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	q := db.Table("vacation_requests").
		Select("u.name AS user_name, u.region, vacation_requests.start_date, vacation_requests.end_date, vacation_requests.status, r.name AS replacement_name, vacation_requests.admin_comment").
		Joins("JOIN users u ON u.id = vacation_requests.user_id").
		Joins("JOIN users r ON r.id = vacation_requests.replacement_user_id").
		Where("vacation_requests.status IN ?", []string{"approved", "rejected"}).
		Where("vacation_requests.start_date >= ? AND vacation_requests.start_date < ?", start, end)
	if region != "" {
		q = q.Where("u.region = ?", region)
	}

	var rows []vacationRow
	if err := q.Order("u.name asc, vacation_requests.start_date asc").Scan(&rows).Error; err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Vacation report %d", year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{50, 30, 28, 28, 25, 50, 60}
	headers := []string{"Employee", "Region", "From", "To", "Status", "Replacement", "Comment"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		region := ""
		if row.Region != nil {
			region = *row.Region
		}
		comment := ""
		if row.AdminComment != nil {
			comment = *row.AdminComment
		}

		cells := []string{
			row.UserName,
			region,
			row.StartDate.Format("2006-01-02"),
			row.EndDate.Format("2006-01-02"),
			row.Status,
			row.ReplacementName,
			comment,
		}
		for i, v := range cells {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
