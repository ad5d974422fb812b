// internal/services/customer_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopvelvet/backend/internal/apperrors"
	"github.com/shopvelvet/backend/internal/authz"
	"github.com/shopvelvet/backend/internal/models"
	"github.com/shopvelvet/backend/internal/utils"
)

type CustomerService struct {
	db *gorm.DB
}

type CreateCustomerRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type UpdateCustomerRequest struct {
	Phone      string                `json:"phone,omitempty" validate:"omitempty,max=20"`
	BirthDate  *time.Time            `json:"birth_date,omitempty"`
	Sex        models.Sex            `json:"sex,omitempty" validate:"omitempty,oneof=m f"`
	Membership models.MembershipTier `json:"membership,omitempty" validate:"omitempty,oneof=b s g"`
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) ListCustomers(p authz.Principal, params utils.PaginationParams) ([]models.Customer, int64, error) {
	query := authz.ScopeToOwner(s.db.Model(&models.Customer{}), p, "user_id").Preload("User")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "membership"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	return customers, total, nil
}

func (s *CustomerService) GetCustomer(p authz.Principal, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Preload("User").First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("customer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !authz.CanAccess(p, customer.UserID) {
		return nil, apperrors.Permission("not allowed to view this customer")
	}

	return &customer, nil
}

// CreateCustomer provisions a customer (and its cart) for an existing user.
// Registration already does this for new accounts; this path exists for
// staff backfilling profiles.
func (s *CustomerService) CreateCustomer(req *CreateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing models.Customer
	if err := s.db.First(&existing, "user_id = ?", req.UserID).Error; err == nil {
		return nil, apperrors.Conflict("customer profile already exists for this user")
	}

	var customer *models.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		customer, err = provisionCustomer(tx, req.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return customer, nil
}

// CurrentCustomer resolves the caller's own profile.
func (s *CustomerService) CurrentCustomer(userID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Preload("User").First(&customer, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("user has no customer profile")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &customer, nil
}

func (s *CustomerService) UpdateCurrentCustomer(userID uuid.UUID, req *UpdateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	customer, err := s.CurrentCustomer(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.BirthDate != nil {
		updates["birth_date"] = req.BirthDate
	}
	if req.Sex != "" {
		updates["sex"] = req.Sex
	}
	if req.Membership != "" {
		updates["membership"] = req.Membership
	}

	if len(updates) > 0 {
		if err := s.db.Model(customer).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
	}

	return customer, nil
}
