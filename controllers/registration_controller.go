package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/akhil-629/EventSphere/models"
	"github.com/akhil-629/EventSphere/repository"
	"github.com/akhil-629/EventSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// RegistrationController serves the admin-only registration read paths
type RegistrationController struct {
	repo repository.RegistrationRepository
}

// NewRegistrationController creates a RegistrationController
func NewRegistrationController(repo repository.RegistrationRepository) *RegistrationController {
	return &RegistrationController{repo: repo}
}

// GET /api/registrations
//
// Returns every registration by default; page/limit query parameters switch
// on pagination for large events.
func (r *RegistrationController) List(c *gin.Context) {
	utils.LogInfo("ListRegistrations called")

	opts := repository.ListOptions{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	paginated := c.Query("page") != "" || c.Query("limit") != ""
	var pagination *utils.Pagination
	if paginated {
		pagination = utils.NewPagination(c)
		opts.Offset = pagination.Offset
		opts.Limit = pagination.Limit
	}

	registrations, total, err := r.repo.List(opts)
	if err != nil {
		utils.LogError("Failed to fetch registrations: %v", err)
		utils.InternalServerError(c, "Failed to fetch registrations")
		return
	}
	utils.LogInfo("Retrieved %d registrations", len(registrations))

	payload := gin.H{"registrations": registrations}
	if paginated {
		pagination.SetTotal(total)
		payload["pagination"] = pagination.Meta()
	}
	utils.Success(c, payload)
}

// GET /api/registrations/:id/receipt
//
// Generates a PDF payment receipt for a completed registration.
func (r *RegistrationController) DownloadReceipt(c *gin.Context) {
	utils.LogInfo("DownloadReceipt called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.LogError("Invalid registration ID in receipt request: %v", err)
		utils.BadRequest(c, "Invalid registration ID")
		return
	}

	registration, err := r.repo.FindByID(uint(id))
	if err != nil {
		if err == repository.ErrRegistrationNotFound {
			utils.NotFound(c, "Registration not found")
			return
		}
		utils.LogError("Failed to fetch registration ID: %d: %v", id, err)
		utils.InternalServerError(c, "Failed to fetch registration")
		return
	}

	if registration.PaymentStatus != models.PaymentStatusCompleted {
		utils.LogError("Receipt requested for non-completed registration ID: %d, status: %s", registration.ID, registration.PaymentStatus)
		utils.BadRequest(c, "Receipt is only available for completed registrations")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName)
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Event Registration Desk")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Registration ID: "+strconv.Itoa(int(registration.ID)))
	pdf.Cell(80, 8, "Registered: "+registration.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	if registration.PaidAt != nil {
		pdf.Cell(60, 8, "Paid: "+registration.PaidAt.Format("2006-01-02 15:04:05"))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Attendee")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, registration.Name)
	pdf.Ln(6)
	pdf.Cell(100, 8, registration.Email)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Phone: "+registration.ContactNumber)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Category: "+registration.RegistrationCategory)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Payment")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	if registration.RazorpayOrderID != nil {
		pdf.Cell(100, 8, "Order ID: "+*registration.RazorpayOrderID)
		pdf.Ln(6)
	}
	if registration.RazorpayPaymentID != nil {
		pdf.Cell(100, 8, "Payment ID: "+*registration.RazorpayPaymentID)
		pdf.Ln(6)
	}
	pdf.Cell(100, 8, "Status: "+registration.PaymentStatus)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate receipt PDF for registration ID: %d: %v", registration.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=receipt-"+strconv.Itoa(int(registration.ID))+".pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
