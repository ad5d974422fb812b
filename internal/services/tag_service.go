// internal/services/tag_service.go
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

type TagService struct {
	db       *gorm.DB
	registry *TargetRegistry
}

type TagRequest struct {
	Label string `json:"label" validate:"required,max=64"`
}

type AttachTagRequest struct {
	EntityType models.EntityType `json:"entity_type" validate:"required"`
	EntityID   uuid.UUID         `json:"entity_id" validate:"required"`
}

func NewTagService(db *gorm.DB, registry *TargetRegistry) *TagService {
	return &TagService{db: db, registry: registry}
}

func (s *TagService) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("label").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	return tags, nil
}

func (s *TagService) GetTag(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &tag, nil
}

func (s *TagService) CreateTag(req *TagRequest) (*models.Tag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tag := &models.Tag{Label: req.Label}
	if err := s.db.Create(tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

func (s *TagService) UpdateTag(id uuid.UUID, req *TagRequest) (*models.Tag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tag, err := s.GetTag(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(tag).Update("label", req.Label).Error; err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

func (s *TagService) DeleteTag(id uuid.UUID) error {
	tag, err := s.GetTag(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TaggedItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete tagged items: %w", err)
		}
		if err := tx.Delete(tag).Error; err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		return nil
	})
}

func (s *TagService) ListTaggedItems(tagID uuid.UUID) ([]models.TaggedItem, error) {
	if _, err := s.GetTag(tagID); err != nil {
		return nil, err
	}

	var items []models.TaggedItem
	if err := s.db.Preload("Tag").Where("tag_id = ?", tagID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tagged items: %w", err)
	}
	return items, nil
}

// AttachTag associates a tag with a target entity. An existing association
// is an error, not a no-op: callers are told the target is already tagged.
func (s *TagService) AttachTag(tagID uuid.UUID, req *AttachTagRequest) (*models.TaggedItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var item *models.TaggedItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, "id = ?", tagID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("tag with the given id does not exist")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := s.registry.Resolve(tx, req.EntityType, req.EntityID); err != nil {
			return err
		}

		var existing models.TaggedItem
		err := tx.Where("tag_id = ? AND entity_type = ? AND entity_id = ?",
			tagID, req.EntityType, req.EntityID).First(&existing).Error
		if err == nil {
			return apperrors.Conflictf("already tagged: tag %q is already attached to this %s", tag.Label, req.EntityType)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		item = &models.TaggedItem{
			TagID:      tagID,
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
		}
		if err := tx.Create(item).Error; err != nil {
			if apperrors.IsUniqueViolation(err) {
				return apperrors.Conflictf("already tagged: tag %q is already attached to this %s", tag.Label, req.EntityType)
			}
			return fmt.Errorf("failed to create tagged item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Tag").First(item, "id = ?", item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload tagged item: %w", err)
	}
	return item, nil
}
