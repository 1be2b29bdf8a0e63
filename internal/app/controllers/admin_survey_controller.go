package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/domain/services"
	"github.com/jashanpj/janasampark/internal/domain/services/container"
	"github.com/jashanpj/janasampark/internal/error/code"
	"github.com/jashanpj/janasampark/internal/error/response"
	"github.com/jashanpj/janasampark/pkg/logger"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// AdminSurveyController handles the cross-owner survey views: the filtered
// listing and the dashboard statistics.
type AdminSurveyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminSurveyController creates a new admin survey controller.
func NewAdminSurveyController(ctx *gin.Context, container *container.ServiceContainer) *AdminSurveyController {
	return &AdminSurveyController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAdminSurveyFunc returns a gin handler dispatching to the admin survey
// controller.
func HandleAdminSurveyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminSurveyController(ctx, container)

		switch method {
		case "listSurveys":
			controller.ListSurveys()
		case "getStatistics":
			controller.GetStatistics()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. ListSurveys returns one page of every user's surveys, filtered by
// search text, local body and ward number.
// @Summary      List all surveys
// @Tags         Admin
// @Produce      json
// @Param        page        query int    false "Page number"      default(1)
// @Param        page_size   query int    false "Page size"        default(10)
// @Param        search      query string false "Name or phone search"
// @Param        local_body  query string false "Local body filter"
// @Param        ward_number query int    false "Ward number filter"
// @Success      200  {object}  response.Response
// @Router       /admin/surveys [get]
// @Security     BearerAuth
func (c *AdminSurveyController) ListSurveys() {
	query := services.AdminSurveyQuery{
		Page:     queryInt(c.Ctx, "page", 1),
		PageSize: queryInt(c.Ctx, "page_size", defaultPageSize),
		Search:   c.Ctx.Query("search"),
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = defaultPageSize
	}
	if query.PageSize > maxPageSize {
		query.PageSize = maxPageSize
	}

	if lb := c.Ctx.Query("local_body"); lb != "" && lb != "all" {
		query.LocalBody = lb
	}
	if ward := queryInt(c.Ctx, "ward_number", 0); ward > 0 {
		query.WardNumber = ward
	}

	surveyService := c.Container.GetService("survey").(services.InterfaceSurveyService)
	surveys, total, err := surveyService.ListSurveys(query)
	if err != nil {
		logger.Error("failed to list surveys: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"surveys":    surveys,
		"pagination": models.NewPaginationResult(total, query.Page, query.PageSize),
	})
}

// 2. GetStatistics returns the dashboard totals and the most recent
// submissions.
// @Summary      Survey statistics
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/surveys/statistics [get]
// @Security     BearerAuth
func (c *AdminSurveyController) GetStatistics() {
	surveyService := c.Container.GetService("survey").(services.InterfaceSurveyService)
	stats, err := surveyService.GetStatistics()
	if err != nil {
		logger.Error("failed to compute statistics: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"statistics": stats})
}

// queryInt reads an integer query parameter, falling back on absence or
// garbage.
func queryInt(ctx *gin.Context, key string, fallback int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
