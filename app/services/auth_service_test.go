package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/services"
	"github.com/fennwick/brasserie/pkg/apperr"
	"github.com/fennwick/brasserie/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	staff, token, err := svc.Register(services.RegisterInput{
		Username:        "head_chef",
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, staff.IsActive)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.StaffID)
	assert.Equal(t, "head_chef", claims.Username)

	// The stored password is a hash, never the plaintext.
	var stored models.Staff
	require.NoError(t, db.First(&stored, staff.ID).Error)
	assert.NotEqual(t, "secret123", stored.Password)

	_, token, err = svc.Login(services.LoginInput{Username: "head_chef", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, _, err := svc.Register(services.RegisterInput{
		Username: "head_chef", Password: "secret123", PasswordConfirm: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(services.RegisterInput{
		Username: "head_chef", Password: "other456", PasswordConfirm: "other456",
	})
	require.Error(t, err)
	verr, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "username")
}

func TestLoginFailuresDoNotLeakWhichPartFailed(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, _, err := svc.Register(services.RegisterInput{
		Username: "head_chef", Password: "secret123", PasswordConfirm: "secret123",
	})
	require.NoError(t, err)

	_, _, wrongUser := svc.Login(services.LoginInput{Username: "nobody", Password: "secret123"})
	_, _, wrongPass := svc.Login(services.LoginInput{Username: "head_chef", Password: "nope"})

	for _, err := range []error{wrongUser, wrongPass} {
		require.Error(t, err)
		aerr, ok := apperr.IsAuthentication(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid username or password", aerr.Error())
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	staff, _, err := svc.Register(services.RegisterInput{
		Username: "head_chef", Password: "secret123", PasswordConfirm: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Staff{}).
		Where("id = ?", staff.ID).
		Update("is_active", false).Error)

	_, _, err = svc.Login(services.LoginInput{Username: "head_chef", Password: "secret123"})
	require.Error(t, err)
	aerr, ok := apperr.IsAuthentication(err)
	require.True(t, ok)
	assert.Equal(t, "This account has been disabled", aerr.Error())
}

func TestMeUnknownStaff(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, err := svc.Me(404)
	_, ok := apperr.IsNotFound(err)
	assert.True(t, ok)
}
