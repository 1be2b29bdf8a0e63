package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
	"github.com/jashanpj/janasampark/utils"
)

// Sentinel errors surfaced to controllers for status mapping.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrUserAlreadyApproved = errors.New("user is already approved")
)

// InterfaceUserService manages the credential store: account lifecycle,
// approval, role and password changes.
type InterfaceUserService interface {
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetAllUsers() ([]UserWithMeta, error)
	GetUserWithMeta(id uint) (*UserWithMeta, error)
	CreateUser(user *models.User, plainPassword string) error
	UpdateUser(id uint, updates map[string]interface{}) (*models.User, error)
	DeleteUser(id uint) error
	ApproveUser(id, approverID uint) (*models.User, error)
	UpdateRole(id uint, role models.Role) (*models.User, error)
	UpdatePassword(id uint, newPassword string) error
}

// UserWithMeta is a user row joined with its approver projection and the
// number of surveys it owns, for the admin listing.
type UserWithMeta struct {
	models.User
	SurveyCount int64 `json:"survey_count"`
}

// UserService implements InterfaceUserService on the relational store.
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService creates a new user service.
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// GetUserByID fetches a user by primary key.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername fetches a user by its unique username.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAllUsers returns every account, unapproved first then newest, each with
// its approver projection and owned survey count.
func (s *UserService) GetAllUsers() ([]UserWithMeta, error) {
	var users []models.User
	if err := s.DB.Preload("Approver").
		Order("is_approved asc").
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return nil, err
	}

	counts, err := s.surveyCounts()
	if err != nil {
		return nil, err
	}

	result := make([]UserWithMeta, 0, len(users))
	for _, user := range users {
		result = append(result, UserWithMeta{
			User:        user,
			SurveyCount: counts[user.ID],
		})
	}
	return result, nil
}

// GetUserWithMeta returns a single account with approver and survey count.
func (s *UserService) GetUserWithMeta(id uint) (*UserWithMeta, error) {
	var user models.User
	if err := s.DB.Preload("Approver").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Survey{}).Where("created_by = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}

	return &UserWithMeta{User: user, SurveyCount: count}, nil
}

// surveyCounts loads owned-survey counts for all users in one query.
func (s *UserService) surveyCounts() (map[uint]int64, error) {
	type row struct {
		CreatedBy uint
		Count     int64
	}
	var rows []row
	if err := s.DB.Model(&models.Survey{}).
		Select("created_by, count(*) as count").
		Group("created_by").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CreatedBy] = r.Count
	}
	return counts, nil
}

// CreateUser hashes the password and persists a new account. The username
// must be unique; the uniqueness check and the insert are not atomic, so the
// database unique constraint is the final arbiter.
func (s *UserService) CreateUser(user *models.User, plainPassword string) error {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(plainPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}
	user.Password = hashedPassword

	return s.DB.Create(user).Error
}

// UpdateUser applies a partial update. Username changes re-check uniqueness;
// password values are hashed before storage.
func (s *UserService) UpdateUser(id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if username, ok := updates["username"].(string); ok && username != user.Username {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("username = ? AND id != ?", username, user.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameTaken
		}
	}

	if password, ok := updates["password"].(string); ok {
		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %v", err)
		}
		updates["password"] = hashedPassword
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(id)
}

// DeleteUser removes an account and, via the foreign key constraint, every
// survey it owns.
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("created_by = ?", user.ID).Delete(&models.Survey{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// ApproveUser flips the approval flag and records the approving admin.
// Approving an already-approved account is rejected.
func (s *UserService) ApproveUser(id, approverID uint) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user.IsApproved {
		return nil, ErrUserAlreadyApproved
	}

	if err := s.DB.Model(user).Updates(map[string]interface{}{
		"is_approved": true,
		"approved_by": approverID,
	}).Error; err != nil {
		return nil, err
	}

	var approved models.User
	if err := s.DB.Preload("Approver").First(&approved, id).Error; err != nil {
		return nil, err
	}
	return &approved, nil
}

// UpdateRole changes an account's role.
func (s *UserService) UpdateRole(id uint, role models.Role) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(user).Update("role", role).Error; err != nil {
		return nil, err
	}
	return s.GetUserByID(id)
}

// UpdatePassword resets an account's password to a new value.
func (s *UserService) UpdatePassword(id uint, newPassword string) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	return s.DB.Model(user).Update("password", hashedPassword).Error
}
