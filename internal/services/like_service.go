// internal/services/like_service.go
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

type LikeService struct {
	db       *gorm.DB
	registry *TargetRegistry
}

type LikeRequest struct {
	EntityType models.EntityType `json:"entity_type" validate:"required"`
	EntityID   uuid.UUID         `json:"entity_id" validate:"required"`
}

func NewLikeService(db *gorm.DB, registry *TargetRegistry) *LikeService {
	return &LikeService{db: db, registry: registry}
}

// Like marks a target as liked by the user. Liking the same target twice is
// rejected rather than ignored.
func (s *LikeService) Like(userID uuid.UUID, req *LikeRequest) (*models.LikedItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var like *models.LikedItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.registry.Resolve(tx, req.EntityType, req.EntityID); err != nil {
			return err
		}

		var existing models.LikedItem
		err := tx.Where("user_id = ? AND entity_type = ? AND entity_id = ?",
			userID, req.EntityType, req.EntityID).First(&existing).Error
		if err == nil {
			return apperrors.Conflict("already liked, cannot like again")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		like = &models.LikedItem{
			UserID:     userID,
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
		}
		if err := tx.Create(like).Error; err != nil {
			if apperrors.IsUniqueViolation(err) {
				return apperrors.Conflict("already liked, cannot like again")
			}
			return fmt.Errorf("failed to create liked item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return like, nil
}

func (s *LikeService) ListLikes(p authz.Principal, params utils.PaginationParams) ([]models.LikedItem, int64, error) {
	query := authz.ScopeToOwner(s.db.Model(&models.LikedItem{}), p, "user_id")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count liked items: %w", err)
	}

	allowedSortFields := []string{"created_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var likes []models.LikedItem
	if err := query.Find(&likes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch liked items: %w", err)
	}

	return likes, total, nil
}

func (s *LikeService) Unlike(p authz.Principal, id uuid.UUID) error {
	var like models.LikedItem
	if err := s.db.First(&like, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("liked item not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !authz.CanAccess(p, like.UserID) {
		return apperrors.Permission("not allowed to remove this like")
	}

	if err := s.db.Delete(&like).Error; err != nil {
		return fmt.Errorf("failed to delete liked item: %w", err)
	}

	return nil
}
