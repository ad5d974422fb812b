// internal/services/order_service.go
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

type OrderService struct {
	db *gorm.DB
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=pending failed confirmed"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder converts the caller's cart into an order: checks stock for
// every line, decrements it, snapshots unit prices into order items and
// empties the cart. The whole conversion is one transaction; concurrent
// orders against the same product serialize on the row locks.
func (s *OrderService) PlaceOrder(userID uuid.UUID) (*models.Order, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("user has no customer profile")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var cart models.Cart
	if err := s.db.First(&cart, "customer_id = ?", customer.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("no cart was found for this customer")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}

		if len(items) == 0 {
			return apperrors.Validation("the cart is empty, add products before creating an order")
		}

		order = &models.Order{
			CustomerID: customer.ID,
			Status:     models.OrderStatusPending,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for i := range items {
			item := &items[i]

			var product models.Product
			if err := tx.Set("gorm:query_option", "FOR UPDATE").
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return fmt.Errorf("failed to lock product: %w", err)
			}

			if product.Stock < item.Quantity {
				return apperrors.Validationf(
					"cart item #%s - product %q does not have enough stock available, adjust the quantity in your cart",
					item.ID, product.Title)
			}

			if err := tx.Model(&product).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}

			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				UnitPrice: product.UnitPrice,
				Quantity:  item.Quantity,
			})
		}

		if err := tx.Create(&orderItems).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadOrder(order.ID)
}

func (s *OrderService) ListOrders(p authz.Principal, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})
	if !p.IsStaff {
		query = query.Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.user_id = ?", p.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Preload("Items.Product").Preload("Customer").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	for i := range orders {
		orders[i].Price()
	}
	return orders, total, nil
}

func (s *OrderService) GetOrder(p authz.Principal, id uuid.UUID) (*models.Order, error) {
	order, err := s.loadOrder(id)
	if err != nil {
		return nil, err
	}

	if order.Customer == nil || !authz.CanAccess(p, order.Customer.UserID) {
		return nil, apperrors.Permission("not allowed to view this order")
	}

	return order, nil
}

// UpdateStatus moves an order along its lifecycle. Orders only leave
// pending, and only toward confirmed or failed.
func (s *OrderService) UpdateStatus(id uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	order, err := s.loadOrder(id)
	if err != nil {
		return nil, err
	}

	if !order.CanTransitionTo(req.Status) {
		return nil, apperrors.Validationf("order status cannot change from %s to %s", order.Status, req.Status)
	}

	if err := s.db.Model(order).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = req.Status
	return order, nil
}

func (s *OrderService) loadOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items.Product").Preload("Customer").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	order.Price()
	return &order, nil
}
