package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/utils"
)

func TestCreateUserHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	user := &models.User{
		Name:       "Anitha K",
		Username:   "anitha",
		Phone:      "9876543210",
		Role:       models.RoleUser,
		WardNumber: 5,
		LocalBody:  "Varappuzha",
	}
	require.NoError(t, svc.CreateUser(user, "secret123"))

	stored, err := svc.GetUserByUsername("anitha")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, utils.CheckPasswordHash("secret123", stored.Password))
	assert.False(t, stored.IsApproved)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	seedUser(t, db, "anitha", "secret123", models.RoleUser, false)

	dup := &models.User{
		Name:       "Another Anitha",
		Username:   "anitha",
		Phone:      "9876543211",
		Role:       models.RoleUser,
		WardNumber: 6,
		LocalBody:  "Kottuvally",
	}
	err := svc.CreateUser(dup, "secret456")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetAllUsersOrdersUnapprovedFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	approved := seedUser(t, db, "approved", "secret123", models.RoleUser, true)
	pending := seedUser(t, db, "pending", "secret123", models.RoleUser, false)
	seedSurvey(t, db, approved.ID, "Constituent One")
	seedSurvey(t, db, approved.ID, "Constituent Two")

	users, err := svc.GetAllUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, pending.ID, users[0].ID)
	assert.Equal(t, approved.ID, users[1].ID)
	assert.Equal(t, int64(0), users[0].SurveyCount)
	assert.Equal(t, int64(2), users[1].SurveyCount)
}

func TestApproveUserRecordsApprover(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	admin := seedUser(t, db, "admin", "secret123", models.RoleAdmin, true)
	pending := seedUser(t, db, "pending", "secret123", models.RoleUser, false)

	approved, err := svc.ApproveUser(pending.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
	require.NotNil(t, approved.Approver)
	assert.Equal(t, "admin", approved.Approver.Username)
}

func TestApproveUserAlreadyApproved(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	admin := seedUser(t, db, "admin", "secret123", models.RoleAdmin, true)
	user := seedUser(t, db, "worker", "secret123", models.RoleUser, true)

	_, err := svc.ApproveUser(user.ID, admin.ID)
	assert.ErrorIs(t, err, ErrUserAlreadyApproved)
}

func TestApproveUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	admin := seedUser(t, db, "admin", "secret123", models.RoleAdmin, true)

	_, err := svc.ApproveUser(9999, admin.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserUsernameConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	seedUser(t, db, "taken", "secret123", models.RoleUser, true)
	user := seedUser(t, db, "mine", "secret123", models.RoleUser, true)

	_, err := svc.UpdateUser(user.ID, map[string]interface{}{"username": "taken"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateUserKeepingOwnUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	user := seedUser(t, db, "mine", "secret123", models.RoleUser, true)

	updated, err := svc.UpdateUser(user.ID, map[string]interface{}{
		"username": "mine",
		"name":     "New Name",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
}

func TestUpdateUserHashesPasswordValues(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	user := seedUser(t, db, "mine", "secret123", models.RoleUser, true)

	updated, err := svc.UpdateUser(user.ID, map[string]interface{}{"password": "changed789"})
	require.NoError(t, err)
	assert.NotEqual(t, "changed789", updated.Password)
	assert.True(t, utils.CheckPasswordHash("changed789", updated.Password))
}

func TestDeleteUserRemovesOwnedSurveys(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	owner := seedUser(t, db, "owner", "secret123", models.RoleUser, true)
	other := seedUser(t, db, "other", "secret123", models.RoleUser, true)
	seedSurvey(t, db, owner.ID, "Owned One")
	seedSurvey(t, db, owner.ID, "Owned Two")
	kept := seedSurvey(t, db, other.ID, "Kept")

	require.NoError(t, svc.DeleteUser(owner.ID))

	_, err := svc.GetUserByID(owner.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Survey{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var remaining models.Survey
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, kept.ID, remaining.ID)
}

func TestUpdateRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	user := seedUser(t, db, "worker", "secret123", models.RoleUser, true)

	updated, err := svc.UpdateRole(user.ID, models.RoleWardSecretary)
	require.NoError(t, err)
	assert.Equal(t, models.RoleWardSecretary, updated.Role)
}

func TestUpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())
	jwtSvc := NewJWTService(testConfig(), db)

	seedUser(t, db, "worker", "secret123", models.RoleUser, true)
	user, err := svc.GetUserByUsername("worker")
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(user.ID, "newpass99"))

	_, err = jwtSvc.Login("worker", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	result, err := jwtSvc.Login("worker", "newpass99")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)
}
