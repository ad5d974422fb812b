// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopvelvet/backend/internal/apperrors"
	"github.com/shopvelvet/backend/internal/models"
	"github.com/shopvelvet/backend/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

type CreateCollectionRequest struct {
	Title string `json:"title" validate:"required,max=32"`
}

type UpdateCollectionRequest struct {
	Title string `json:"title" validate:"required,max=32"`
}

type CreateProductRequest struct {
	Title        string          `json:"title" validate:"required,min=3,max=128"`
	CollectionID uuid.UUID       `json:"collection_id" validate:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"required"`
	OldUnitPrice decimal.Decimal `json:"old_unit_price,omitempty"`
	Description  string          `json:"description,omitempty"`
	Stock        int             `json:"stock" validate:"min=0"`
}

type UpdateProductRequest struct {
	Title        string           `json:"title,omitempty" validate:"omitempty,min=3,max=128"`
	CollectionID *uuid.UUID       `json:"collection_id,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	OldUnitPrice *decimal.Decimal `json:"old_unit_price,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Stock        *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CollectionID *uuid.UUID       `json:"collection_id,omitempty"`
	PriceMin     *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax     *decimal.Decimal `json:"price_max,omitempty"`
	InStock      *bool            `json:"in_stock,omitempty"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// collectionWithCount annotates each collection with its product count,
// computed at query time.
func (s *CatalogService) collectionWithCount() *gorm.DB {
	return s.db.Model(&models.Collection{}).
		Select("collections.*, count(products.id) as products_count").
		Joins("LEFT JOIN products ON products.collection_id = collections.id").
		Group("collections.id")
}

func (s *CatalogService) ListCollections() ([]models.Collection, error) {
	var collections []models.Collection
	if err := s.collectionWithCount().Order("title").Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}
	return collections, nil
}

func (s *CatalogService) GetCollection(id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := s.collectionWithCount().Where("collections.id = ?", id).First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("collection not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &collection, nil
}

func (s *CatalogService) CreateCollection(req *CreateCollectionRequest) (*models.Collection, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	collection := &models.Collection{Title: req.Title}
	if err := s.db.Create(collection).Error; err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return collection, nil
}

func (s *CatalogService) UpdateCollection(id uuid.UUID, req *UpdateCollectionRequest) (*models.Collection, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	collection, err := s.GetCollection(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(collection).Update("title", req.Title).Error; err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}
	return collection, nil
}

// DeleteCollection refuses to delete a collection that still has products.
func (s *CatalogService) DeleteCollection(id uuid.UUID) error {
	collection, err := s.GetCollection(id)
	if err != nil {
		return err
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("collection_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		return apperrors.Conflictf("collection %q still has %d products and cannot be deleted", collection.Title, productCount)
	}

	if err := s.db.Delete(collection).Error; err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

func (s *CatalogService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Collection")

	if params.CollectionID != nil {
		query = query.Where("collection_id = ?", *params.CollectionID)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("unit_price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("unit_price <= ?", *params.PriceMax)
	}

	if params.InStock != nil && *params.InStock {
		query = query.Where("stock > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "unit_price", "stock"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *CatalogService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Collection").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var collection models.Collection
	if err := s.db.First(&collection, "id = ?", req.CollectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("collection not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.UnitPrice.IsNegative() {
		return nil, apperrors.Validation("unit price cannot be negative")
	}

	product := &models.Product{
		Title:        req.Title,
		CollectionID: req.CollectionID,
		UnitPrice:    req.UnitPrice,
		OldUnitPrice: req.OldUnitPrice,
		Description:  req.Description,
		Stock:        req.Stock,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.db.Preload("Collection").First(product, "id = ?", product.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.CollectionID != nil {
		var collection models.Collection
		if err := s.db.First(&collection, "id = ?", *req.CollectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("collection not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		updates["collection_id"] = *req.CollectionID
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, apperrors.Validation("unit price cannot be negative")
		}
		updates["unit_price"] = *req.UnitPrice
	}
	if req.OldUnitPrice != nil {
		updates["old_unit_price"] = *req.OldUnitPrice
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperrors.Validation("stock cannot be negative")
		}
		updates["stock"] = *req.Stock
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	if err := s.db.Preload("Collection").First(product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	return product, nil
}

// DeleteProduct refuses to delete a product referenced by an order.
func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	var orderItemCount int64
	if err := s.db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&orderItemCount).Error; err != nil {
		return fmt.Errorf("failed to count order items: %w", err)
	}
	if orderItemCount > 0 {
		return apperrors.Conflictf("product %q is referenced by existing orders and cannot be deleted", product.Title)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Cart lines referencing the product go with it.
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		if err := tx.Delete(product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	return err
}
