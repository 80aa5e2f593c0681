package models

import (
	"time"
)

// Payment status values for a registration
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Registration categories accepted by the registration form
const (
	CategoryStudent      = "student"
	CategoryProfessional = "professional"
	CategoryAcademic     = "academic"
	CategoryOther        = "other"
)

// RegistrationCategories lists all accepted categories
var RegistrationCategories = []string{
	CategoryStudent,
	CategoryProfessional,
	CategoryAcademic,
	CategoryOther,
}

// Registration represents one attendee's signup record plus its payment outcome
type Registration struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Email                string     `gorm:"size:255;not null" json:"email"`
	Name                 string     `gorm:"size:255;not null" json:"name"`
	ContactNumber        string     `gorm:"size:20;not null" json:"contactNumber"`
	WhatsappNumber       *string    `gorm:"size:20" json:"whatsappNumber"`
	RegistrationCategory string     `gorm:"size:50;not null" json:"registrationCategory"`
	YearOfStudying       *string    `gorm:"size:50" json:"yearOfStudying"`
	YearOfPassing        *string    `gorm:"size:10" json:"yearOfPassing"`
	PaymentStatus        string     `gorm:"size:20;not null;default:pending" json:"paymentStatus"`
	RazorpayOrderID      *string    `gorm:"size:255;index" json:"razorpayOrderId"`
	RazorpayPaymentID    *string    `gorm:"size:255" json:"razorpayPaymentId"`
	CreatedAt            time.Time  `json:"createdAt"`
	PaidAt               *time.Time `json:"paidAt"`
}

// IsValidCategory reports whether category is one of the accepted values
func IsValidCategory(category string) bool {
	for _, c := range RegistrationCategories {
		if c == category {
			return true
		}
	}
	return false
}
