// internal/services/target_registry.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopvelvet/backend/internal/apperrors"
	"github.com/shopvelvet/backend/internal/models"
)

// TargetRegistry resolves the polymorphic (entity type, entity id) pairs used
// by tagged and liked items. Each taggable entity kind registers a loader;
// attaching to an unregistered kind or a missing row is rejected.
type TargetRegistry struct {
	loaders map[models.EntityType]func(tx *gorm.DB, id uuid.UUID) (bool, error)
}

func NewTargetRegistry() *TargetRegistry {
	return &TargetRegistry{
		loaders: map[models.EntityType]func(tx *gorm.DB, id uuid.UUID) (bool, error){
			models.EntityTypeProduct:    existsByID[models.Product],
			models.EntityTypeCollection: existsByID[models.Collection],
		},
	}
}

func existsByID[T any](tx *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	var model T
	if err := tx.Model(&model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up target: %w", err)
	}
	return count > 0, nil
}

// Resolve verifies the target exists. Returns NotFound for unknown entity
// types and dangling ids.
func (r *TargetRegistry) Resolve(tx *gorm.DB, entityType models.EntityType, entityID uuid.UUID) error {
	loader, ok := r.loaders[entityType]
	if !ok {
		return apperrors.NotFoundf("unknown entity type %q", entityType)
	}

	exists, err := loader(tx, entityID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFoundf("%s with id %s does not exist", entityType, entityID)
	}
	return nil
}
