// internal/handlers/like.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopvelvet/backend/internal/services"
	"github.com/shopvelvet/backend/internal/utils"
)

type LikeHandler struct {
	likeService *services.LikeService
}

func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// POST /likes
func (h *LikeHandler) Like(c *gin.Context) {
	principal := utils.GetPrincipal(c)

	var req services.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	like, err := h.likeService.Like(principal.UserID, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"like": like})
}

// GET /likes
func (h *LikeHandler) ListLikes(c *gin.Context) {
	principal := utils.GetPrincipal(c)
	params := utils.GetPaginationParams(c)

	likes, total, err := h.likeService.ListLikes(principal, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(likes, total, params))
}

// DELETE /likes/:id
func (h *LikeHandler) Unlike(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid like id", nil)
		return
	}

	if err := h.likeService.Unlike(utils.GetPrincipal(c), id); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "like removed"})
}
