package repository

import (
	"errors"
	"time"

	"github.com/akhil-629/EventSphere/models"
	"gorm.io/gorm"
)

// ErrRegistrationNotFound is returned when no registration matches the id
var ErrRegistrationNotFound = errors.New("registration not found")

// ListOptions controls filtering and pagination of the admin listing
type ListOptions struct {
	Search string
	Status string
	Offset int
	Limit  int
}

// RegistrationRepository is the durable store of registrations
type RegistrationRepository interface {
	Create(reg *models.Registration) error
	FindByID(id uint) (*models.Registration, error)
	SetOrderID(id uint, orderID string) error
	// MarkCompleted records a verified payment. The update is conditional on
	// the row not already being completed, which makes concurrent duplicate
	// verifications idempotent; it reports whether this call won the write.
	MarkCompleted(id uint, paymentID string, paidAt time.Time) (bool, error)
	// MarkFailed records a rejected verification. It never downgrades a row
	// that has already completed.
	MarkFailed(id uint) error
	List(opts ListOptions) ([]models.Registration, int64, error)
}

type gormRegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a gorm-backed RegistrationRepository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &gormRegistrationRepository{db: db}
}

func (r *gormRegistrationRepository) Create(reg *models.Registration) error {
	if reg.PaymentStatus == "" {
		reg.PaymentStatus = models.PaymentStatusPending
	}
	return r.db.Create(reg).Error
}

func (r *gormRegistrationRepository) FindByID(id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.First(&reg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *gormRegistrationRepository) SetOrderID(id uint, orderID string) error {
	return r.db.Model(&models.Registration{}).
		Where("id = ?", id).
		Update("razorpay_order_id", orderID).Error
}

func (r *gormRegistrationRepository) MarkCompleted(id uint, paymentID string, paidAt time.Time) (bool, error) {
	res := r.db.Model(&models.Registration{}).
		Where("id = ? AND payment_status <> ?", id, models.PaymentStatusCompleted).
		Updates(map[string]interface{}{
			"payment_status":      models.PaymentStatusCompleted,
			"razorpay_payment_id": paymentID,
			"paid_at":             paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRegistrationRepository) MarkFailed(id uint) error {
	return r.db.Model(&models.Registration{}).
		Where("id = ? AND payment_status <> ?", id, models.PaymentStatusCompleted).
		Update("payment_status", models.PaymentStatusFailed).Error
}

func (r *gormRegistrationRepository) List(opts ListOptions) ([]models.Registration, int64, error) {
	query := r.db.Model(&models.Registration{})

	if opts.Search != "" {
		searchTerm := "%" + opts.Search + "%"
		query = query.Where(
			"email LIKE ? OR name LIKE ? OR contact_number LIKE ?",
			searchTerm, searchTerm, searchTerm,
		)
	}
	if opts.Status != "" {
		query = query.Where("payment_status = ?", opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if opts.Limit > 0 {
		query = query.Offset(opts.Offset).Limit(opts.Limit)
	}

	var registrations []models.Registration
	if err := query.Find(&registrations).Error; err != nil {
		return nil, 0, err
	}
	return registrations, total, nil
}
