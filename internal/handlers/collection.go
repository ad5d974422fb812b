// internal/handlers/collection.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopvelvet/backend/internal/services"
	"github.com/shopvelvet/backend/internal/utils"
)

type CollectionHandler struct {
	catalogService *services.CatalogService
}

func NewCollectionHandler(catalogService *services.CatalogService) *CollectionHandler {
	return &CollectionHandler{catalogService: catalogService}
}

// GET /collections
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	collections, err := h.catalogService.ListCollections()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"collections": collections})
}

// GET /collections/:id
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid collection id", nil)
		return
	}

	collection, err := h.catalogService.GetCollection(id)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"collection": collection})
}

// POST /collections (staff only)
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var req services.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	collection, err := h.catalogService.CreateCollection(&req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"collection": collection})
}

// PUT /collections/:id (staff only)
func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid collection id", nil)
		return
	}

	var req services.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	collection, err := h.catalogService.UpdateCollection(id, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"collection": collection})
}

// DELETE /collections/:id (staff only)
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid collection id", nil)
		return
	}

	if err := h.catalogService.DeleteCollection(id); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "collection deleted"})
}
