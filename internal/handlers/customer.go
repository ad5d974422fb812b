// internal/handlers/customer.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopvelvet/backend/internal/services"
	"github.com/shopvelvet/backend/internal/utils"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// GET /customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	principal := utils.GetPrincipal(c)
	params := utils.GetPaginationParams(c)

	customers, total, err := h.customerService.ListCustomers(principal, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(customers, total, params))
}

// GET /customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid customer id", nil)
		return
	}

	customer, err := h.customerService.GetCustomer(utils.GetPrincipal(c), id)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"customer": customer})
}

// POST /customers (staff only)
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(&req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"customer": customer})
}

// GET /customers/me
func (h *CustomerHandler) CurrentCustomer(c *gin.Context) {
	principal := utils.GetPrincipal(c)

	customer, err := h.customerService.CurrentCustomer(principal.UserID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"customer": customer})
}

// PATCH /customers/me
func (h *CustomerHandler) UpdateCurrentCustomer(c *gin.Context) {
	principal := utils.GetPrincipal(c)

	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	customer, err := h.customerService.UpdateCurrentCustomer(principal.UserID, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"customer": customer})
}
