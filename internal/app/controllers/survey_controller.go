package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jashanpj/janasampark/internal/app/middleware"
	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/domain/services"
	"github.com/jashanpj/janasampark/internal/domain/services/container"
	"github.com/jashanpj/janasampark/internal/error/code"
	"github.com/jashanpj/janasampark/internal/error/response"
	"github.com/jashanpj/janasampark/pkg/logger"
)

// SurveyController handles the field worker's own survey records.
type SurveyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSurveyController creates a new survey controller.
func NewSurveyController(ctx *gin.Context, container *container.ServiceContainer) *SurveyController {
	return &SurveyController{
		Ctx:       ctx,
		Container: container,
	}
}

// SurveyRequest is the create/update payload for a survey record.
type SurveyRequest struct {
	Name                 string  `json:"name" binding:"required" example:"Raman Nair"`
	Age                  int     `json:"age" binding:"required" example:"42"`
	Education            string  `json:"education" binding:"required" example:"Higher Secondary"`
	Job                  string  `json:"job" binding:"required" example:"Farmer"`
	Phone                string  `json:"phone" binding:"required" example:"9876543210"`
	PoliticalAffiliation string  `json:"political_affiliation" binding:"required" example:"LDF"`
	Religion             string  `json:"religion" binding:"required" example:"Hindu"`
	Caste                string  `json:"caste" binding:"required" example:"Ezhava"`
	CustomCaste          *string `json:"custom_caste,omitempty"`
	Category             string  `json:"category" binding:"required" example:"OBC"`
	Sex                  string  `json:"sex" binding:"required" example:"MALE"`
}

// HandleSurveyFunc returns a gin handler dispatching to the survey
// controller.
func HandleSurveyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSurveyController(ctx, container)

		switch method {
		case "getSurveys":
			controller.GetSurveys()
		case "getSurvey":
			controller.GetSurvey()
		case "createSurvey":
			controller.CreateSurvey()
		case "updateSurvey":
			controller.UpdateSurvey()
		case "deleteSurvey":
			controller.DeleteSurvey()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// validate checks every survey field against the fixed option sets and
// returns the normalized phone and custom caste, or a rejection message.
func (r *SurveyRequest) validate() (phone string, customCaste *string, errMsg string) {
	if !models.IsValidAge(r.Age) {
		return "", nil, "Age must be between 1 and 120"
	}
	if !models.IsValidEducation(r.Education) {
		return "", nil, "Invalid education value"
	}
	if !models.IsValidJob(r.Job) {
		return "", nil, "Invalid job value"
	}
	if !models.PoliticalAffiliation(r.PoliticalAffiliation).IsValid() {
		return "", nil, "Invalid political affiliation"
	}
	if !models.IsValidReligion(r.Religion) {
		return "", nil, "Invalid religion value"
	}
	if !models.IsValidCaste(r.Religion, r.Caste) {
		return "", nil, "Invalid caste value"
	}
	if r.Caste == "Other" {
		if r.CustomCaste == nil || *r.CustomCaste == "" {
			return "", nil, "Custom caste is required when selecting Other"
		}
		customCaste = r.CustomCaste
	} else if r.CustomCaste != nil && *r.CustomCaste != "" {
		return "", nil, "Custom caste is only allowed when selecting Other"
	}
	if !models.IsValidCategory(r.Category) {
		return "", nil, "Invalid category value"
	}
	if !models.Sex(r.Sex).IsValid() {
		return "", nil, "Invalid sex value"
	}
	normalized, ok := models.NormalizePhone(r.Phone)
	if !ok {
		return "", nil, "Phone number must be 10 digits"
	}
	return normalized, customCaste, ""
}

// currentUser returns the account the guard resolved for this request.
func (c *SurveyController) currentUser() (*models.User, bool) {
	user, ok := middleware.CurrentUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return nil, false
	}
	return user, true
}

// surveyID parses the :id path parameter.
func (c *SurveyController) surveyID() (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "invalid survey id")
		return 0, false
	}
	return uint(id), true
}

// 1. GetSurveys lists the caller's surveys, newest first.
// @Summary      List own surveys
// @Tags         Survey
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /surveys [get]
// @Security     BearerAuth
func (c *SurveyController) GetSurveys() {
	user, ok := c.currentUser()
	if !ok {
		return
	}

	surveyService := c.Container.GetService("survey").(services.InterfaceSurveyService)
	surveys, err := surveyService.GetSurveysByOwner(user.ID)
	if err != nil {
		logger.Error("failed to list surveys: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"surveys": surveys})
}

// 2. GetSurvey fetches one of the caller's surveys.
// @Summary      Get own survey
// @Tags         Survey
// @Produce      json
// @Param        id path int true "Survey ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /surveys/{id} [get]
// @Security     BearerAuth
func (c *SurveyController) GetSurvey() {
	user, ok := c.currentUser()
	if !ok {
		return
	}
	id, ok := c.surveyID()
	if !ok {
		return
	}

	surveyService := c.Container.GetService("survey").(services.InterfaceSurveyService)
	survey, err := surveyService.GetSurveyForOwner(id, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			response.Fail(c.Ctx, code.ErrSurveyNotFound, nil)
			return
		}
		logger.Error("failed to get survey: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"survey": survey})
}

// 3. CreateSurvey records a new demographic data point owned by the caller.
// @Summary      Create survey
// @Tags         Survey
// @Accept       json
// @Produce      json
// @Param        body body SurveyRequest true "Survey"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /surveys [post]
// @Security     BearerAuth
func (c *SurveyController) CreateSurvey() {
	user, ok := c.currentUser()
	if !ok {
		return
	}

	var req SurveyRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "All fields are required", nil)
		return
	}

	phone, customCaste, errMsg := req.validate()
	if errMsg != "" {
		response.FailWithMessage(c.Ctx, code.ErrValidation, errMsg, nil)
		return
	}

	survey := &models.Survey{
		Name:                 req.Name,
		Age:                  req.Age,
		Education:            req.Education,
		Job:                  req.Job,
		Phone:                phone,
		PoliticalAffiliation: models.PoliticalAffiliation(req.PoliticalAffiliation),
		Religion:             req.Religion,
		Caste:                req.Caste,
		CustomCaste:          customCaste,
		Category:             req.Category,
		Sex:                  models.Sex(req.Sex),
		CreatedBy:            user.ID,
	}

	surveyService := c.Container.GetService("survey").(services.InterfaceSurveyService)
	if err := surveyService.CreateSurvey(survey); err != nil {
		logger.Error("failed to create survey: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Created(c.Ctx, gin.H{"survey": survey})
}

// 4. UpdateSurvey rewrites one of the caller's surveys.
// @Summary      Update own survey
// @Tags         Survey
// @Accept       json
// @Produce      json
// @Param        id path int true "Survey ID"
// @Param        body body SurveyRequest true "Survey"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /surveys/{id} [put]
// @Security     BearerAuth
func (c *SurveyController) UpdateSurvey() {
	user, ok := c.currentUser()
	if !ok {
		return
	}
	id, ok := c.surveyID()
	if !ok {
		return
	}

	var req SurveyRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "All fields are required", nil)
		return
	}

	phone, customCaste, errMsg := req.validate()
	if errMsg != "" {
		response.FailWithMessage(c.Ctx, code.ErrValidation, errMsg, nil)
		return
	}

	updates := map[string]interface{}{
		"name":                  req.Name,
		"age":                   req.Age,
		"education":             req.Education,
		"job":                   req.Job,
		"phone":                 phone,
		"political_affiliation": req.PoliticalAffiliation,
		"religion":              req.Religion,
		"caste":                 req.Caste,
		"custom_caste":          customCaste,
		"category":              req.Category,
		"sex":                   req.Sex,
	}

	surveyService := c.Container.GetService("survey").(services.InterfaceSurveyService)
	survey, err := surveyService.UpdateSurvey(id, user.ID, updates)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			response.Fail(c.Ctx, code.ErrSurveyNotFound, nil)
			return
		}
		logger.Error("failed to update survey: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"survey": survey})
}

// 5. DeleteSurvey removes one of the caller's surveys.
// @Summary      Delete own survey
// @Tags         Survey
// @Produce      json
// @Param        id path int true "Survey ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /surveys/{id} [delete]
// @Security     BearerAuth
func (c *SurveyController) DeleteSurvey() {
	user, ok := c.currentUser()
	if !ok {
		return
	}
	id, ok := c.surveyID()
	if !ok {
		return
	}

	surveyService := c.Container.GetService("survey").(services.InterfaceSurveyService)
	if err := surveyService.DeleteSurvey(id, user.ID); err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			response.Fail(c.Ctx, code.ErrSurveyNotFound, nil)
			return
		}
		logger.Error("failed to delete survey: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "Survey deleted successfully"})
}
