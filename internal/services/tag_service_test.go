// internal/services/tag_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopvelvet/backend/internal/apperrors"
	"github.com/shopvelvet/backend/internal/models"
)

func TestAttachTagToProductAndCollection(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db, NewTargetRegistry())

	shirts := createCollection(t, db, "shirts")
	shirt := createProduct(t, db, shirts, "linen shirt", "25.00", 10)

	tag, err := svc.CreateTag(&TagRequest{Label: "summer"})
	require.NoError(t, err)

	item, err := svc.AttachTag(tag.ID, &AttachTagRequest{
		EntityType: models.EntityTypeProduct,
		EntityID:   shirt.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, shirt.ID, item.EntityID)

	_, err = svc.AttachTag(tag.ID, &AttachTagRequest{
		EntityType: models.EntityTypeCollection,
		EntityID:   shirts.ID,
	})
	require.NoError(t, err)

	items, err := svc.ListTaggedItems(tag.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAttachTagTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db, NewTargetRegistry())

	shirts := createCollection(t, db, "shirts")
	shirt := createProduct(t, db, shirts, "linen shirt", "25.00", 10)

	tag, err := svc.CreateTag(&TagRequest{Label: "summer"})
	require.NoError(t, err)

	req := &AttachTagRequest{EntityType: models.EntityTypeProduct, EntityID: shirt.ID}
	_, err = svc.AttachTag(tag.ID, req)
	require.NoError(t, err)

	_, err = svc.AttachTag(tag.ID, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "already tagged")

	// Exactly one association survives.
	var count int64
	db.Model(&models.TaggedItem{}).Where("tag_id = ?", tag.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAttachTagUnknownTargets(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db, NewTargetRegistry())

	tag, err := svc.CreateTag(&TagRequest{Label: "summer"})
	require.NoError(t, err)

	// Dangling id.
	_, err = svc.AttachTag(tag.ID, &AttachTagRequest{
		EntityType: models.EntityTypeProduct,
		EntityID:   uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	// Unregistered entity type.
	_, err = svc.AttachTag(tag.ID, &AttachTagRequest{
		EntityType: models.EntityType("warehouse"),
		EntityID:   uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	// Unknown tag.
	shirts := createCollection(t, db, "shirts")
	_, err = svc.AttachTag(uuid.New(), &AttachTagRequest{
		EntityType: models.EntityTypeCollection,
		EntityID:   shirts.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteTagCascadesToTaggedItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db, NewTargetRegistry())

	shirts := createCollection(t, db, "shirts")
	shirt := createProduct(t, db, shirts, "linen shirt", "25.00", 10)

	tag, err := svc.CreateTag(&TagRequest{Label: "summer"})
	require.NoError(t, err)
	_, err = svc.AttachTag(tag.ID, &AttachTagRequest{
		EntityType: models.EntityTypeProduct,
		EntityID:   shirt.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTag(tag.ID))

	var count int64
	db.Model(&models.TaggedItem{}).Where("tag_id = ?", tag.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestTagsListedByLabel(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(db, NewTargetRegistry())

	for _, label := range []string{"winter", "summer", "clearance"} {
		_, err := svc.CreateTag(&TagRequest{Label: label})
		require.NoError(t, err)
	}

	tags, err := svc.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "clearance", tags[0].Label)
	assert.Equal(t, "summer", tags[1].Label)
	assert.Equal(t, "winter", tags[2].Label)
}
