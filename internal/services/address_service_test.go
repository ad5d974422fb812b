// internal/services/address_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopvelvet/backend/internal/apperrors"
	"github.com/shopvelvet/backend/internal/authz"
	"github.com/shopvelvet/backend/internal/models"
	"github.com/shopvelvet/backend/internal/utils"
)

func TestCreateAddressBindsToOwnProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)

	user, customer := createCustomer(t, db)

	address, err := svc.CreateAddress(authz.Principal{UserID: user.ID}, &CreateAddressRequest{
		Label:  "home",
		Street: "12 Lake Road",
		City:   "Dhaka",
		State:  "Dhaka",
	})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, address.CustomerID)
	assert.Equal(t, models.CountryBangladesh, address.Country)
}

func TestCreateAddressWithoutCustomerProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)

	user := createUser(t, db, false)

	_, err := svc.CreateAddress(authz.Principal{UserID: user.ID}, &CreateAddressRequest{
		Label:  "home",
		Street: "12 Lake Road",
		City:   "Dhaka",
		State:  "Dhaka",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddressOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)

	owner, _ := createCustomer(t, db)
	stranger, _ := createCustomer(t, db)

	address, err := svc.CreateAddress(authz.Principal{UserID: owner.ID}, &CreateAddressRequest{
		Label:  "home",
		Street: "12 Lake Road",
		City:   "Dhaka",
		State:  "Dhaka",
	})
	require.NoError(t, err)

	_, err = svc.GetAddress(authz.Principal{UserID: stranger.ID}, address.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsPermission(err))

	err = svc.DeleteAddress(authz.Principal{UserID: stranger.ID}, address.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsPermission(err))

	// The owner can.
	require.NoError(t, svc.DeleteAddress(authz.Principal{UserID: owner.ID}, address.ID))
}

func TestListAddressesScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)

	userA, _ := createCustomer(t, db)
	userB, _ := createCustomer(t, db)

	for _, uid := range []authz.Principal{{UserID: userA.ID}, {UserID: userB.ID}} {
		_, err := svc.CreateAddress(uid, &CreateAddressRequest{
			Label:  "home",
			Street: "12 Lake Road",
			City:   "Dhaka",
			State:  "Dhaka",
		})
		require.NoError(t, err)
	}

	params := utils.PaginationParams{Page: 1, Limit: 10}

	own, total, err := svc.ListAddresses(authz.Principal{UserID: userA.ID}, params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, own, 1)

	staff := createUser(t, db, true)
	_, total, err = svc.ListAddresses(authz.Principal{UserID: staff.ID, IsStaff: true}, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestUpdateAddressPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)

	user, _ := createCustomer(t, db)
	p := authz.Principal{UserID: user.ID}

	address, err := svc.CreateAddress(p, &CreateAddressRequest{
		Label:  "home",
		Street: "12 Lake Road",
		City:   "Dhaka",
		State:  "Dhaka",
	})
	require.NoError(t, err)

	_, err = svc.UpdateAddress(p, address.ID, &UpdateAddressRequest{City: "Chittagong"})
	require.NoError(t, err)

	var reloaded models.Address
	require.NoError(t, db.First(&reloaded, "id = ?", address.ID).Error)
	assert.Equal(t, "Chittagong", reloaded.City)
	assert.Equal(t, "12 Lake Road", reloaded.Street)
}
