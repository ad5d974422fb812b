// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopvelvet/backend/internal/services"
	"github.com/shopvelvet/backend/internal/utils"
)

type CartHandler struct {
	cartService     *services.CartService
	customerService *services.CustomerService
}

func NewCartHandler(cartService *services.CartService, customerService *services.CustomerService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		customerService: customerService,
	}
}

// POST /carts
//
// Anonymous callers get a fresh anonymous cart; authenticated callers get a
// cart bound to their customer profile. A customer who already has a cart
// gets a conflict.
func (h *CartHandler) CreateCart(c *gin.Context) {
	principal := utils.GetPrincipal(c)

	var customerID *uuid.UUID
	if principal.Authenticated() {
		customer, err := h.customerService.CurrentCustomer(principal.UserID)
		if err != nil {
			utils.DomainErrorResponse(c, err)
			return
		}
		customerID = &customer.ID
	}

	cart, err := h.cartService.CreateCart(customerID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"cart": cart})
}

// GET /carts/mine
func (h *CartHandler) GetOwnCart(c *gin.Context) {
	principal := utils.GetPrincipal(c)

	cart, err := h.cartService.GetCartForUser(principal.UserID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"cart": cart})
}

// GET /carts/:id
func (h *CartHandler) GetCart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid cart id", nil)
		return
	}

	cart, err := h.cartService.GetCart(id)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"cart": cart})
}

// POST /carts/:id/items
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid cart id", nil)
		return
	}

	var req services.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.cartService.AddItem(cartID, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"item": item})
}

// PATCH /carts/:id/items/:itemID
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid cart id", nil)
		return
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid cart item id", nil)
		return
	}

	var req services.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	item, err := h.cartService.UpdateItem(cartID, itemID, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"item": item})
}

// DELETE /carts/:id/items/:itemID
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid cart id", nil)
		return
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid cart item id", nil)
		return
	}

	if err := h.cartService.RemoveItem(cartID, itemID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "cart item removed"})
}

// POST /carts/:id/merge
//
// :id is the anonymous cart; the authenticated side is resolved from the
// caller's own customer profile.
func (h *CartHandler) MergeCarts(c *gin.Context) {
	anonCartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid cart id", nil)
		return
	}

	principal := utils.GetPrincipal(c)

	cart, err := h.cartService.Merge(principal.UserID, anonCartID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"cart": cart})
}
