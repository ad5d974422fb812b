// internal/models/tag.go
package models

import "github.com/google/uuid"

type Tag struct {
	BaseModel
	Label string `json:"label" gorm:"size:64;not null"`
}

// TaggedItem attaches a tag to an arbitrary entity, identified by a type
// discriminator plus object id. A given tag attaches to a given target at
// most once.
type TaggedItem struct {
	BaseModel
	TagID      uuid.UUID  `json:"tag_id" gorm:"type:uuid;not null;uniqueIndex:idx_tag_target"`
	Tag        *Tag       `json:"tag,omitempty" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
	EntityType EntityType `json:"entity_type" gorm:"type:varchar(20);not null;uniqueIndex:idx_tag_target"`
	EntityID   uuid.UUID  `json:"entity_id" gorm:"type:uuid;not null;uniqueIndex:idx_tag_target"`
}
