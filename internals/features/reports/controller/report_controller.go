package controller

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"medstaff_backend/internals/features/reports/service"
	helper "medstaff_backend/internals/helpers"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// GET /api/a/reports/attendance.xlsx?month=2025-07&region=
func (rc *ReportController) AttendanceExcel(c *fiber.Ctx) error {
	month := time.Now().UTC()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid month, expected YYYY-MM")
		}
		month = parsed
	}

	buf, err := service.AttendanceExcel(rc.DB, month, c.Query("region"))
	if err != nil {
		log.Println("[ERROR] AttendanceExcel:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to build report")
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", month.Format("2006-01"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// GET /api/a/reports/vacations.pdf?year=2025&region=
func (rc *ReportController) VacationsPDF(c *fiber.Ctx) error {
	year := time.Now().UTC().Year()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 2000 || parsed > 2100 {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid year")
		}
		year = parsed
	}

	buf, err := service.VacationsPDF(rc.DB, year, c.Query("region"))
	if err != nil {
		log.Println("[ERROR] VacationsPDF:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to build report")
	}

	filename := fmt.Sprintf("vacations-%d.pdf", year)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
