// internal/models/like.go
package models

import "github.com/google/uuid"

// LikedItem marks an entity as liked by a user, with the same polymorphic
// targeting scheme as TaggedItem. A user likes a given target at most once.
type LikedItem struct {
	BaseModel
	UserID     uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_target"`
	User       *User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	EntityType EntityType `json:"entity_type" gorm:"type:varchar(20);not null;uniqueIndex:idx_user_target"`
	EntityID   uuid.UUID  `json:"entity_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_target"`
}
