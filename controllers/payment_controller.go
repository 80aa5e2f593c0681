package controllers

import (
	"fmt"
	"time"

	"github.com/akhil-629/EventSphere/config"
	"github.com/akhil-629/EventSphere/gateway"
	"github.com/akhil-629/EventSphere/models"
	"github.com/akhil-629/EventSphere/repository"
	"github.com/akhil-629/EventSphere/utils"
	"github.com/gin-gonic/gin"
)

// PaymentController orchestrates the two-phase registration payment flow:
// create a gateway order for a fresh registration, then verify the signed
// callback and resolve the registration's payment status.
type PaymentController struct {
	repo      repository.RegistrationRepository
	issuer    gateway.OrderIssuer
	keyID     string
	keySecret string
}

// NewPaymentController creates a PaymentController. The gateway credentials
// come in through config; nothing here reads the process environment.
func NewPaymentController(repo repository.RegistrationRepository, issuer gateway.OrderIssuer, cfg *config.Config) *PaymentController {
	return &PaymentController{
		repo:      repo,
		issuer:    issuer,
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
	}
}

// CreateOrderRequest represents the registration form submission
type CreateOrderRequest struct {
	Amount               int64  `json:"amount"`
	Currency             string `json:"currency"`
	Email                string `json:"email"`
	Name                 string `json:"name"`
	ContactNumber        string `json:"contactNumber"`
	WhatsappNumber       string `json:"whatsappNumber"`
	RegistrationCategory string `json:"registrationCategory"`
	YearOfStudying       string `json:"yearOfStudying"`
	YearOfPassing        string `json:"yearOfPassing"`
}

func validateCreateOrder(req *CreateOrderRequest) *utils.AppError {
	if req.Email == "" || req.Name == "" || req.ContactNumber == "" || req.RegistrationCategory == "" || req.Amount == 0 {
		return utils.ValidationError("Missing required fields: email, name, contactNumber, registrationCategory, and amount are required")
	}
	if ok, msg := utils.ValidateAmount(req.Amount); !ok {
		return utils.ValidationError(msg)
	}
	if ok, msg := utils.ValidateEmail(req.Email); !ok {
		return utils.ValidationError(msg)
	}
	if !models.IsValidCategory(req.RegistrationCategory) {
		return utils.ValidationError("Invalid registration category")
	}
	return nil
}

// nullable converts an optional form field to its stored representation
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// POST /api/create-order
func (p *PaymentController) CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create-order request body: %v", err)
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if appErr := validateCreateOrder(&req); appErr != nil {
		utils.LogError("Create-order validation failed: %s", appErr.Message)
		utils.RespondWithError(c, appErr)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = utils.DefaultCurrency
	}

	registration := models.Registration{
		Email:                req.Email,
		Name:                 utils.SanitizeString(req.Name),
		ContactNumber:        req.ContactNumber,
		WhatsappNumber:       nullable(req.WhatsappNumber),
		RegistrationCategory: req.RegistrationCategory,
		YearOfStudying:       nullable(req.YearOfStudying),
		YearOfPassing:        nullable(req.YearOfPassing),
		PaymentStatus:        models.PaymentStatusPending,
	}
	if err := p.repo.Create(&registration); err != nil {
		utils.LogError("Failed to create registration: %v", err)
		utils.InternalServerError(c, "Failed to create order")
		return
	}
	utils.LogInfo("Created pending registration ID: %d", registration.ID)

	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	notes := map[string]interface{}{
		"registrationId": registration.ID,
		"email":          req.Email,
		"name":           registration.Name,
	}

	order, err := p.issuer.CreateOrder(req.Amount, currency, receipt, notes)
	if err != nil {
		// The registration stays pending with no order id. It is recoverable:
		// resubmitting the form simply creates a fresh registration.
		utils.LogError("Failed to create gateway order for registration ID: %d: %v", registration.ID, err)
		utils.InternalServerError(c, "Failed to create order")
		return
	}
	utils.LogInfo("Created gateway order %s for registration ID: %d", order.ID, registration.ID)

	if err := p.repo.SetOrderID(registration.ID, order.ID); err != nil {
		utils.LogError("Failed to store order id for registration ID: %d: %v", registration.ID, err)
		utils.InternalServerError(c, "Failed to create order")
		return
	}

	utils.Success(c, gin.H{
		"orderId":        order.ID,
		"amount":         order.Amount,
		"currency":       order.Currency,
		"razorpayKeyId":  p.keyID,
		"registrationId": registration.ID,
	})
}

// VerifyPaymentRequest represents the checkout callback the frontend relays
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	RegistrationID    uint   `json:"registrationId"`
}

// POST /api/verify-payment
func (p *PaymentController) VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify-payment request body: %v", err)
		utils.BadRequest(c, "Missing required payment verification fields")
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" || req.RegistrationID == 0 {
		utils.LogError("Verify-payment request missing fields for registration ID: %d", req.RegistrationID)
		utils.BadRequest(c, "Missing required payment verification fields")
		return
	}

	registration, err := p.repo.FindByID(req.RegistrationID)
	if err != nil {
		if err == repository.ErrRegistrationNotFound {
			utils.LogError("Registration not found for ID: %d", req.RegistrationID)
			utils.NotFound(c, "Registration not found")
			return
		}
		utils.LogError("Failed to fetch registration ID: %d: %v", req.RegistrationID, err)
		utils.InternalServerError(c, "Payment verification failed")
		return
	}

	// The supplied order id must be the one minted for this registration.
	// Anything else is a replay of a different registration's callback.
	if registration.RazorpayOrderID == nil || *registration.RazorpayOrderID != req.RazorpayOrderID {
		utils.LogSecurity("Order ID mismatch for registration ID: %d, received: %s", registration.ID, req.RazorpayOrderID)
		utils.BadRequest(c, "Order ID mismatch")
		return
	}

	if !utils.VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, p.keySecret) {
		utils.LogSecurity("Invalid payment signature for registration ID: %d, order: %s", registration.ID, req.RazorpayOrderID)
		if err := p.repo.MarkFailed(registration.ID); err != nil {
			utils.LogError("Failed to mark registration ID: %d as failed: %v", registration.ID, err)
			utils.InternalServerError(c, "Payment verification failed")
			return
		}
		utils.BadRequest(c, "Invalid payment signature")
		return
	}
	utils.LogInfo("Payment signature verified for registration ID: %d", registration.ID)

	completed, err := p.repo.MarkCompleted(registration.ID, req.RazorpayPaymentID, time.Now())
	if err != nil {
		utils.LogError("Failed to mark registration ID: %d as completed: %v", registration.ID, err)
		utils.InternalServerError(c, "Payment verification failed")
		return
	}
	if !completed {
		// A concurrent or repeated verification already completed this
		// registration; report success without touching the record again.
		utils.LogInfo("Registration ID: %d already completed, verification is idempotent", registration.ID)
	} else {
		utils.LogInfo("Registration ID: %d completed with payment %s", registration.ID, req.RazorpayPaymentID)
		go func(email, name, paymentID string) {
			if err := utils.SendPaymentConfirmation(email, name, paymentID); err != nil {
				utils.LogError("Failed to send confirmation email to %s: %v", email, err)
			}
		}(registration.Email, registration.Name, req.RazorpayPaymentID)
	}

	utils.Success(c, gin.H{
		"message": "Payment verified successfully",
	})
}
