// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopvelvet/backend/internal/apperrors"
	"github.com/shopvelvet/backend/internal/models"
)

func TestRegisterProvisionsCustomerAndCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&RegisterRequest{
		Username: "velvetfan",
		Email:    "fan@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.False(t, resp.User.IsStaff)

	// Registration provisioned the whole chain: user, customer, cart.
	var customer models.Customer
	require.NoError(t, db.First(&customer, "user_id = ?", resp.User.ID).Error)
	assert.Equal(t, models.SexMale, customer.Sex)
	assert.Equal(t, models.MembershipSilver, customer.Membership)

	var cart models.Cart
	require.NoError(t, db.First(&cart, "customer_id = ?", customer.ID).Error)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "first",
		Email:    "taken@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Username: "second",
		Email:    "taken@example.com",
		Password: "Sup3rSecret",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestRegisterWeakPasswordRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "weakling",
		Email:    "weak@example.com",
		Password: "short",
	})
	require.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		Username: "velvetfan",
		Email:    "fan@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "fan@example.com", Password: "WrongPass1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// Unknown email fails the same way; the two cases are not
	// distinguishable to the caller.
	_, err = svc.Login(&LoginRequest{Email: "ghost@example.com", Password: "Sup3rSecret"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&RegisterRequest{
		Username: "velvetfan",
		Email:    "fan@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	resp, err := svc.Login(&LoginRequest{Email: "fan@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", reg.User.ID).Error)
	assert.NotNil(t, user.LastLoginAt)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&RegisterRequest{
		Username: "velvetfan",
		Email:    "fan@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	resp, err := svc.RefreshToken(reg.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.RefreshToken("not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
