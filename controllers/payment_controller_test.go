package controllers

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/akhil-629/EventSphere/config"
	"github.com/akhil-629/EventSphere/gateway"
	"github.com/akhil-629/EventSphere/models"
	"github.com/akhil-629/EventSphere/repository"
	"github.com/akhil-629/EventSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testKeyID     = "rzp_test_key"
	testKeySecret = "test_secret_key"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Registration{}, &models.Admin{}, &models.BlacklistedToken{}))
	return db
}

// fakeOrderIssuer stands in for the Razorpay client
type fakeOrderIssuer struct {
	orders      int
	fail        bool
	lastReceipt string
	lastNotes   map[string]interface{}
}

func (f *fakeOrderIssuer) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*gateway.Order, error) {
	if f.fail {
		return nil, errors.New("gateway unavailable")
	}
	f.orders++
	f.lastReceipt = receipt
	f.lastNotes = notes
	return &gateway.Order{
		ID:       fmt.Sprintf("order_fake_%d", f.orders),
		Amount:   amount,
		Currency: currency,
	}, nil
}

func setupPaymentRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeOrderIssuer) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	issuer := &fakeOrderIssuer{}
	cfg := &config.Config{RazorpayKeyID: testKeyID, RazorpayKeySecret: testKeySecret}

	payments := NewPaymentController(repository.NewRegistrationRepository(db), issuer, cfg)

	router := gin.New()
	router.POST("/api/create-order", payments.CreateOrder)
	router.POST("/api/verify-payment", payments.VerifyPayment)
	return router, db, issuer
}

func createOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"amount":               30000,
		"currency":             "INR",
		"email":                "a@b.com",
		"name":                 "A",
		"contactNumber":        "9999999999",
		"registrationCategory": "student",
	}
}

func fetchRegistration(t *testing.T, db *gorm.DB, id uint) *models.Registration {
	var reg models.Registration
	require.NoError(t, db.First(&reg, id).Error)
	return &reg
}

func TestCreateOrder(t *testing.T) {
	router, db, issuer := setupPaymentRouter(t)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/create-order", Body: createOrderBody(),
	})

	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, resp.Body["success"])
	assert.Equal(t, "order_fake_1", resp.Body["orderId"])
	assert.Equal(t, float64(30000), resp.Body["amount"])
	assert.Equal(t, "INR", resp.Body["currency"])
	assert.Equal(t, testKeyID, resp.Body["razorpayKeyId"])

	regID := uint(resp.Body["registrationId"].(float64))
	reg := fetchRegistration(t, db, regID)
	assert.Equal(t, models.PaymentStatusPending, reg.PaymentStatus)
	require.NotNil(t, reg.RazorpayOrderID)
	assert.Equal(t, "order_fake_1", *reg.RazorpayOrderID)
	assert.Nil(t, reg.RazorpayPaymentID)
	assert.Nil(t, reg.PaidAt)

	// The gateway order carries the registration id as opaque metadata and a
	// timestamp-derived receipt.
	assert.EqualValues(t, regID, issuer.lastNotes["registrationId"])
	assert.Equal(t, "a@b.com", issuer.lastNotes["email"])
	assert.True(t, strings.HasPrefix(issuer.lastReceipt, "receipt_"))
}

func TestCreateOrderDefaultsCurrency(t *testing.T) {
	router, _, _ := setupPaymentRouter(t)

	body := createOrderBody()
	delete(body, "currency")
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/create-order", Body: body,
	})

	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "INR", resp.Body["currency"])
}

func TestCreateOrderValidation(t *testing.T) {
	missingFieldsMsg := "Missing required fields: email, name, contactNumber, registrationCategory, and amount are required"

	tests := []struct {
		name    string
		mutate  func(body map[string]interface{})
		wantErr string
	}{
		{"missing email", func(b map[string]interface{}) { delete(b, "email") }, missingFieldsMsg},
		{"missing name", func(b map[string]interface{}) { delete(b, "name") }, missingFieldsMsg},
		{"missing contact", func(b map[string]interface{}) { delete(b, "contactNumber") }, missingFieldsMsg},
		{"missing category", func(b map[string]interface{}) { delete(b, "registrationCategory") }, missingFieldsMsg},
		{"missing amount", func(b map[string]interface{}) { delete(b, "amount") }, missingFieldsMsg},
		{"zero amount", func(b map[string]interface{}) { b["amount"] = 0 }, missingFieldsMsg},
		{"negative amount", func(b map[string]interface{}) { b["amount"] = -500 }, "Invalid amount"},
		{"bad email", func(b map[string]interface{}) { b["email"] = "not-an-email" }, "Invalid email format. Please enter a valid email address"},
		{"bad category", func(b map[string]interface{}) { b["registrationCategory"] = "alien" }, "Invalid registration category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, db, _ := setupPaymentRouter(t)

			body := createOrderBody()
			tt.mutate(body)
			resp := utils.MakeTestRequest(t, router, utils.TestRequest{
				Method: "POST", Path: "/api/create-order", Body: body,
			})

			utils.AssertErrorResponse(t, resp, 400, tt.wantErr)

			var count int64
			require.NoError(t, db.Model(&models.Registration{}).Count(&count).Error)
			assert.Zero(t, count, "validation failures must not persist anything")
		})
	}
}

func TestCreateOrderGatewayFailureLeavesOrphanedPending(t *testing.T) {
	router, db, issuer := setupPaymentRouter(t)
	issuer.fail = true

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/create-order", Body: createOrderBody(),
	})

	utils.AssertErrorResponse(t, resp, 500, "Failed to create order")

	// The insert happened before the gateway call; the row stays pending
	// with no order id and a resubmission starts over.
	var regs []models.Registration
	require.NoError(t, db.Find(&regs).Error)
	require.Len(t, regs, 1)
	assert.Equal(t, models.PaymentStatusPending, regs[0].PaymentStatus)
	assert.Nil(t, regs[0].RazorpayOrderID)
}

func verifyBody(orderID, paymentID, signature string, regID uint) map[string]interface{} {
	return map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
		"registrationId":      regID,
	}
}

func createTestOrder(t *testing.T, router *gin.Engine) uint {
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/create-order", Body: createOrderBody(),
	})
	require.Equal(t, 200, resp.StatusCode)
	return uint(resp.Body["registrationId"].(float64))
}

func TestVerifyPaymentSuccess(t *testing.T) {
	router, db, _ := setupPaymentRouter(t)
	regID := createTestOrder(t, router)

	signature := utils.RazorpaySignature("order_fake_1", "pay_123", testKeySecret)
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/verify-payment",
		Body: verifyBody("order_fake_1", "pay_123", signature, regID),
	})

	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, resp.Body["success"])

	reg := fetchRegistration(t, db, regID)
	assert.Equal(t, models.PaymentStatusCompleted, reg.PaymentStatus)
	require.NotNil(t, reg.RazorpayPaymentID)
	assert.Equal(t, "pay_123", *reg.RazorpayPaymentID)
	require.NotNil(t, reg.PaidAt)
}

func TestVerifyPaymentTamperedSignature(t *testing.T) {
	router, db, _ := setupPaymentRouter(t)
	regID := createTestOrder(t, router)

	signature := utils.RazorpaySignature("order_fake_1", "pay_123", testKeySecret)
	tampered := signature[:len(signature)-1] + "0"
	if tampered == signature {
		tampered = signature[:len(signature)-1] + "1"
	}

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/verify-payment",
		Body: verifyBody("order_fake_1", "pay_123", tampered, regID),
	})

	utils.AssertErrorResponse(t, resp, 400, "Invalid payment signature")

	reg := fetchRegistration(t, db, regID)
	assert.Equal(t, models.PaymentStatusFailed, reg.PaymentStatus)
	assert.Nil(t, reg.RazorpayPaymentID, "payment id must not be stored on rejection")
	assert.Nil(t, reg.PaidAt)

	// Failed is not terminal: a later verification with the real signature
	// still completes the registration.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/verify-payment",
		Body: verifyBody("order_fake_1", "pay_123", signature, regID),
	})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, models.PaymentStatusCompleted, fetchRegistration(t, db, regID).PaymentStatus)
}

func TestVerifyPaymentOrderIDMismatch(t *testing.T) {
	router, db, _ := setupPaymentRouter(t)
	regID := createTestOrder(t, router)

	// A correctly signed callback for a different order must be rejected
	// before the signature is even considered.
	signature := utils.RazorpaySignature("order_other", "pay_123", testKeySecret)
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/verify-payment",
		Body: verifyBody("order_other", "pay_123", signature, regID),
	})

	utils.AssertErrorResponse(t, resp, 400, "Order ID mismatch")
	assert.Equal(t, models.PaymentStatusPending, fetchRegistration(t, db, regID).PaymentStatus)
}

func TestVerifyPaymentRegistrationNotFound(t *testing.T) {
	router, db, _ := setupPaymentRouter(t)
	regID := createTestOrder(t, router)

	signature := utils.RazorpaySignature("order_fake_1", "pay_123", testKeySecret)
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/verify-payment",
		Body: verifyBody("order_fake_1", "pay_123", signature, regID+100),
	})

	utils.AssertErrorResponse(t, resp, 404, "Registration not found")
	assert.Equal(t, models.PaymentStatusPending, fetchRegistration(t, db, regID).PaymentStatus, "no record may be mutated")
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	router, _, _ := setupPaymentRouter(t)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/verify-payment",
		Body: map[string]interface{}{"razorpay_order_id": "order_fake_1"},
	})

	utils.AssertErrorResponse(t, resp, 400, "Missing required payment verification fields")
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	router, db, _ := setupPaymentRouter(t)
	regID := createTestOrder(t, router)

	signature := utils.RazorpaySignature("order_fake_1", "pay_123", testKeySecret)
	body := verifyBody("order_fake_1", "pay_123", signature, regID)

	first := utils.MakeTestRequest(t, router, utils.TestRequest{Method: "POST", Path: "/api/verify-payment", Body: body})
	second := utils.MakeTestRequest(t, router, utils.TestRequest{Method: "POST", Path: "/api/verify-payment", Body: body})

	assert.Equal(t, 200, first.StatusCode)
	assert.Equal(t, 200, second.StatusCode)

	reg := fetchRegistration(t, db, regID)
	assert.Equal(t, models.PaymentStatusCompleted, reg.PaymentStatus)
	require.NotNil(t, reg.RazorpayPaymentID)
	assert.Equal(t, "pay_123", *reg.RazorpayPaymentID)

	// A bogus callback arriving after completion is rejected but cannot
	// downgrade the completed registration.
	bad := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/verify-payment",
		Body: verifyBody("order_fake_1", "pay_123", "0000000000000000000000000000000000000000000000000000000000000000", regID),
	})
	utils.AssertErrorResponse(t, bad, 400, "Invalid payment signature")
	assert.Equal(t, models.PaymentStatusCompleted, fetchRegistration(t, db, regID).PaymentStatus)
}
