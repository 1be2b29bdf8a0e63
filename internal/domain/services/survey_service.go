package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
)

// ErrSurveyNotFound is returned when a survey does not exist or is not owned
// by the caller. The two cases are indistinguishable on purpose: a survey
// you do not own does not exist for you.
var ErrSurveyNotFound = errors.New("survey not found")

// InterfaceSurveyService manages survey records. Owner-scoped operations
// take the caller's user ID; admin operations see every record.
type InterfaceSurveyService interface {
	GetSurveysByOwner(ownerID uint) ([]models.Survey, error)
	GetSurveyForOwner(id, ownerID uint) (*models.Survey, error)
	CreateSurvey(survey *models.Survey) error
	UpdateSurvey(id, ownerID uint, updates map[string]interface{}) (*models.Survey, error)
	DeleteSurvey(id, ownerID uint) error
	ListSurveys(query AdminSurveyQuery) ([]models.Survey, int64, error)
	GetStatistics() (*SurveyStatistics, error)
}

// AdminSurveyQuery is the filter set for the admin survey listing.
type AdminSurveyQuery struct {
	Page       int
	PageSize   int
	Search     string
	LocalBody  string
	WardNumber int
}

// SurveyStatistics is the admin dashboard summary.
type SurveyStatistics struct {
	TotalSurveys     int64           `json:"total_surveys"`
	TotalUsers       int64           `json:"total_users"`
	PendingApprovals int64           `json:"pending_approvals"`
	RecentSurveys    []models.Survey `json:"recent_surveys"`
}

// SurveyService implements InterfaceSurveyService on the relational store.
type SurveyService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewSurveyService creates a new survey service.
func NewSurveyService(db *gorm.DB, cfg *config.Config) InterfaceSurveyService {
	return &SurveyService{
		DB:     db,
		Config: cfg,
	}
}

// GetSurveysByOwner lists the owner's surveys, newest first, with the
// creator projection loaded.
func (s *SurveyService) GetSurveysByOwner(ownerID uint) ([]models.Survey, error) {
	var surveys []models.Survey
	if err := s.DB.Preload("User").
		Where("created_by = ?", ownerID).
		Order("created_at desc").
		Find(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}

// GetSurveyForOwner fetches one survey scoped to its owner.
func (s *SurveyService) GetSurveyForOwner(id, ownerID uint) (*models.Survey, error) {
	var survey models.Survey
	if err := s.DB.Preload("User").
		Where("id = ? AND created_by = ?", id, ownerID).
		First(&survey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}
	return &survey, nil
}

// CreateSurvey persists a new survey record.
func (s *SurveyService) CreateSurvey(survey *models.Survey) error {
	if err := s.DB.Create(survey).Error; err != nil {
		return err
	}
	return s.DB.Preload("User").First(survey, survey.ID).Error
}

// UpdateSurvey applies a partial update to a survey the caller owns.
func (s *SurveyService) UpdateSurvey(id, ownerID uint, updates map[string]interface{}) (*models.Survey, error) {
	survey, err := s.GetSurveyForOwner(id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(survey).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetSurveyForOwner(id, ownerID)
}

// DeleteSurvey removes a survey the caller owns.
func (s *SurveyService) DeleteSurvey(id, ownerID uint) error {
	survey, err := s.GetSurveyForOwner(id, ownerID)
	if err != nil {
		return err
	}
	return s.DB.Delete(survey).Error
}

// ListSurveys returns one page of the admin listing. Search matches
// constituent name or phone; local body matches case-insensitively on the
// creator's profile; ward number matches exactly.
func (s *SurveyService) ListSurveys(query AdminSurveyQuery) ([]models.Survey, int64, error) {
	base := s.DB.Model(&models.Survey{}).
		Joins("JOIN users ON users.id = surveys.created_by")

	if query.Search != "" {
		base = base.Where("surveys.name LIKE ? OR surveys.phone LIKE ?",
			"%"+query.Search+"%", "%"+query.Search+"%")
	}
	if query.LocalBody != "" {
		base = base.Where("LOWER(users.local_body) = LOWER(?)", query.LocalBody)
	}
	if query.WardNumber > 0 {
		base = base.Where("users.ward_number = ?", query.WardNumber)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var surveys []models.Survey
	offset := (query.Page - 1) * query.PageSize
	if err := base.Preload("User").
		Order("surveys.created_at desc").
		Offset(offset).
		Limit(query.PageSize).
		Find(&surveys).Error; err != nil {
		return nil, 0, err
	}

	return surveys, total, nil
}

// GetStatistics computes the admin dashboard totals. Super admins are not
// counted as field users.
func (s *SurveyService) GetStatistics() (*SurveyStatistics, error) {
	stats := &SurveyStatistics{}

	if err := s.DB.Model(&models.Survey{}).Count(&stats.TotalSurveys).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("role != ?", models.RoleSuperAdmin).
		Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("is_approved = ?", false).
		Count(&stats.PendingApprovals).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Preload("User").
		Order("created_at desc").
		Limit(10).
		Find(&stats.RecentSurveys).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
