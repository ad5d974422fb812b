// internal/services/address_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopvelvet/backend/internal/apperrors"
	"github.com/shopvelvet/backend/internal/authz"
	"github.com/shopvelvet/backend/internal/models"
	"github.com/shopvelvet/backend/internal/utils"
)

type AddressService struct {
	db *gorm.DB
}

type CreateAddressRequest struct {
	Label   string         `json:"label" validate:"required,max=32"`
	Street  string         `json:"street" validate:"required,max=64"`
	City    string         `json:"city" validate:"required,max=64"`
	State   string         `json:"state" validate:"required,max=64"`
	Country models.Country `json:"country,omitempty" validate:"omitempty,oneof=bd"`
}

type UpdateAddressRequest struct {
	Label   string         `json:"label,omitempty" validate:"omitempty,max=32"`
	Street  string         `json:"street,omitempty" validate:"omitempty,max=64"`
	City    string         `json:"city,omitempty" validate:"omitempty,max=64"`
	State   string         `json:"state,omitempty" validate:"omitempty,max=64"`
	Country models.Country `json:"country,omitempty" validate:"omitempty,oneof=bd"`
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

func (s *AddressService) ListAddresses(p authz.Principal, params utils.PaginationParams) ([]models.Address, int64, error) {
	query := s.db.Model(&models.Address{})
	if !p.IsStaff {
		query = query.Joins("JOIN customers ON customers.id = addresses.customer_id").
			Where("customers.user_id = ?", p.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count addresses: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "city"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var addresses []models.Address
	if err := query.Find(&addresses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch addresses: %w", err)
	}

	return addresses, total, nil
}

func (s *AddressService) GetAddress(p authz.Principal, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := s.db.Preload("Customer").First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("address not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !authz.CanAccess(p, address.Customer.UserID) {
		return nil, apperrors.Permission("not allowed to view this address")
	}

	return &address, nil
}

// CreateAddress binds the new address to the caller's own customer profile.
func (s *AddressService) CreateAddress(p authz.Principal, req *CreateAddressRequest) (*models.Address, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var customer models.Customer
	if err := s.db.First(&customer, "user_id = ?", p.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("user has no customer profile")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	address := &models.Address{
		CustomerID: customer.ID,
		Label:      req.Label,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		Country:    models.CountryBangladesh,
	}
	if req.Country != "" {
		address.Country = req.Country
	}

	if err := s.db.Create(address).Error; err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	return address, nil
}

func (s *AddressService) UpdateAddress(p authz.Principal, id uuid.UUID, req *UpdateAddressRequest) (*models.Address, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	address, err := s.GetAddress(p, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Label != "" {
		updates["label"] = req.Label
	}
	if req.Street != "" {
		updates["street"] = req.Street
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.State != "" {
		updates["state"] = req.State
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}

	if len(updates) > 0 {
		if err := s.db.Model(address).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update address: %w", err)
		}
	}

	return address, nil
}

func (s *AddressService) DeleteAddress(p authz.Principal, id uuid.UUID) error {
	address, err := s.GetAddress(p, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(address).Error; err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	return nil
}
