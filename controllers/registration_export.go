package controllers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/akhil-629/EventSphere/repository"
	"github.com/akhil-629/EventSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Email", "Name", "Contact Number", "WhatsApp Number", "Category",
	"Year of Studying", "Year of Passing", "Payment Status",
	"Razorpay Order ID", "Razorpay Payment ID", "Created At", "Paid At",
}

// GET /api/registrations/export?format=xlsx|csv
func (r *RegistrationController) Export(c *gin.Context) {
	utils.LogInfo("ExportRegistrations called")

	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "csv" {
		utils.LogError("Invalid export format requested: %s", format)
		utils.BadRequest(c, "Format must be xlsx or csv")
		return
	}

	registrations, _, err := r.repo.List(repository.ListOptions{
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		utils.LogError("Failed to fetch registrations for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch registrations")
		return
	}
	utils.LogInfo("Exporting %d registrations as %s", len(registrations), format)

	rows := make([][]string, 0, len(registrations))
	for _, reg := range registrations {
		row := []string{
			strconv.Itoa(int(reg.ID)),
			reg.Email,
			reg.Name,
			reg.ContactNumber,
			strFromPtr(reg.WhatsappNumber),
			reg.RegistrationCategory,
			strFromPtr(reg.YearOfStudying),
			strFromPtr(reg.YearOfPassing),
			reg.PaymentStatus,
			strFromPtr(reg.RazorpayOrderID),
			strFromPtr(reg.RazorpayPaymentID),
			reg.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if reg.PaidAt != nil {
			row = append(row, reg.PaidAt.Format("2006-01-02 15:04:05"))
		} else {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	filename := "registrations-" + time.Now().Format("20060102")

	if format == "csv" {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write(exportHeaders)
		_ = w.WriteAll(rows)
		w.Flush()

		c.Header("Content-Disposition", "attachment; filename="+filename+".csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Registrations")
	if err != nil {
		utils.LogError("Failed to create export sheet: %v", err)
		utils.InternalServerError(c, "Failed to generate export")
		return
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		cell := headerRow.AddCell()
		cell.Value = h
	}
	for _, row := range rows {
		sheetRow := sheet.AddRow()
		for _, value := range row {
			cell := sheetRow.AddCell()
			cell.Value = value
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write export file: %v", err)
		utils.InternalServerError(c, "Failed to generate export")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename+".xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func strFromPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
