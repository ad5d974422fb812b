// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopvelvet/backend/internal/apperrors"
	"github.com/shopvelvet/backend/internal/models"
	"github.com/shopvelvet/backend/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest carries the new quantity. No `required` tag: zero
// must reach the explicit range check below so it is rejected as a
// validation error, not a binding failure.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// CreateCart creates a cart, owned when customerID is set, anonymous
// otherwise. A customer has at most one cart.
func (s *CartService) CreateCart(customerID *uuid.UUID) (*models.Cart, error) {
	if customerID != nil {
		var existing models.Cart
		err := s.db.First(&existing, "customer_id = ?", *customerID).Error
		switch {
		case err == nil:
			return nil, apperrors.Conflict("customer already has a cart")
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	cart := &models.Cart{CustomerID: customerID}
	if err := s.db.Create(cart).Error; err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("customer already has a cart")
		}
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	cart.Price()
	return cart, nil
}

func (s *CartService) GetCart(id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.Preload("Items.Product").Preload("Customer").First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	cart.Price()
	return &cart, nil
}

// GetCartForUser resolves the cart owned by the user's customer profile.
func (s *CartService) GetCartForUser(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Preload("Items.Product").Preload("Customer").
		Joins("JOIN customers ON customers.id = carts.customer_id").
		Where("customers.user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no cart found for this user")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	cart.Price()
	return &cart, nil
}

// AddItem adds a product line to the cart, folding the quantity into an
// existing line for the same product. Stock is not checked here; it is
// validated at order time.
func (s *CartService) AddItem(cartID uuid.UUID, req *AddCartItemRequest) (*models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var item *models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, "id = ?", cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("cart not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("product not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		var existing models.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", cartID, req.ProductID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
			existing.Quantity += req.Quantity
			item = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = &models.CartItem{
				CartID:    cartID,
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
			}
			if err := tx.Create(item).Error; err != nil {
				if apperrors.IsUniqueViolation(err) {
					return apperrors.Conflict("cart already has a line for this product")
				}
				return fmt.Errorf("failed to create cart item: %w", err)
			}
		default:
			return fmt.Errorf("database error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Product").First(item, "id = ?", item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload cart item: %w", err)
	}
	return item, nil
}

// UpdateItem sets a line's quantity directly.
func (s *CartService) UpdateItem(cartID, itemID uuid.UUID, req *UpdateCartItemRequest) (*models.CartItem, error) {
	if req.Quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	var item models.CartItem
	if err := s.db.Preload("Product").First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return &item, nil
}

// RemoveItem deletes a line. Removing an already-removed line is a not-found
// error, not a no-op.
func (s *CartService) RemoveItem(cartID, itemID uuid.UUID) error {
	var item models.CartItem
	if err := s.db.First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("cart item not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	return nil
}

// Merge folds the anonymous cart's lines into the authenticated user's cart
// and deletes the anonymous cart. Either every line moves, or nothing does.
func (s *CartService) Merge(userID uuid.UUID, anonCartID uuid.UUID) (*models.Cart, error) {
	authCart, err := s.loadCartForMerge(userID, anonCartID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		anonCart, err := s.getMergeSide(tx, "anonymous user", "id = ?", anonCartID)
		if err != nil {
			return err
		}

		if authCart.ID == anonCart.ID {
			return apperrors.Validation("authenticated and anonymous carts cannot be merged because they have the same id")
		}

		if !anonCart.IsAnonymous() {
			return apperrors.Validation("the provided cart is not an anonymous cart")
		}

		for i := range anonCart.Items {
			anonItem := &anonCart.Items[i]

			var authItem models.CartItem
			err := tx.Where("cart_id = ? AND product_id = ?", authCart.ID, anonItem.ProductID).First(&authItem).Error
			switch {
			case err == nil:
				if err := tx.Model(&authItem).
					UpdateColumn("quantity", gorm.Expr("quantity + ?", anonItem.Quantity)).Error; err != nil {
					return fmt.Errorf("failed to merge cart item: %w", err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				moved := &models.CartItem{
					CartID:    authCart.ID,
					ProductID: anonItem.ProductID,
					Quantity:  anonItem.Quantity,
				}
				if err := tx.Create(moved).Error; err != nil {
					return fmt.Errorf("failed to move cart item: %w", err)
				}
			default:
				return fmt.Errorf("database error: %w", err)
			}

			if err := tx.Delete(anonItem).Error; err != nil {
				return fmt.Errorf("failed to delete merged cart item: %w", err)
			}
		}

		if err := tx.Delete(anonCart).Error; err != nil {
			return fmt.Errorf("failed to delete anonymous cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCart(authCart.ID)
}

// loadCartForMerge resolves the caller's own cart and applies the same
// non-empty guard the anonymous side gets.
func (s *CartService) loadCartForMerge(userID uuid.UUID, anonCartID uuid.UUID) (*models.Cart, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("user has no customer profile")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.getMergeSide(s.db, "authenticated user", "customer_id = ?", customer.ID)
}

func (s *CartService) getMergeSide(tx *gorm.DB, role string, query string, arg interface{}) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Preload("Items").Where(query, arg).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validationf("no cart found for the %s", role)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if len(cart.Items) == 0 {
		return nil, apperrors.Validationf("no product exists for %s cart", role)
	}

	return &cart, nil
}
