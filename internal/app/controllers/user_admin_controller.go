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

// UserAdminController handles account administration: listing, creation,
// editing, approval, role and password changes, deletion.
type UserAdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserAdminController creates a new user admin controller.
func NewUserAdminController(ctx *gin.Context, container *container.ServiceContainer) *UserAdminController {
	return &UserAdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateUserRequest is the admin account-creation payload.
type CreateUserRequest struct {
	Name       string `json:"name" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Role       string `json:"role" binding:"required"`
	WardNumber int    `json:"ward_number" binding:"required"`
	LocalBody  string `json:"local_body" binding:"required"`
	IsApproved *bool  `json:"is_approved"`
}

// UpdateUserRequest is the admin account-edit payload.
type UpdateUserRequest struct {
	Name       string `json:"name" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Role       string `json:"role" binding:"required"`
	WardNumber int    `json:"ward_number" binding:"required"`
	LocalBody  string `json:"local_body" binding:"required"`
	IsApproved *bool  `json:"is_approved"`
}

// UpdateRoleRequest is the super-admin role-change payload.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdatePasswordRequest is the admin password-reset payload.
type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// HandleUserAdminFunc returns a gin handler dispatching to the user admin
// controller.
func HandleUserAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserAdminController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		case "approveUser":
			controller.ApproveUser()
		case "updateRole":
			controller.UpdateRole()
		case "updatePassword":
			controller.UpdatePassword()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// caller returns the admin account resolved by the guard.
func (c *UserAdminController) caller() (*models.User, bool) {
	user, ok := middleware.CurrentUser(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return nil, false
	}
	return user, true
}

// userID parses the :id path parameter.
func (c *UserAdminController) userID() (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "invalid user id")
		return 0, false
	}
	return uint(id), true
}

// target loads the user the operation acts on.
func (c *UserAdminController) target(userService services.InterfaceUserService) (*models.User, bool) {
	id, ok := c.userID()
	if !ok {
		return nil, false
	}

	target, err := userService.GetUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Fail(c.Ctx, code.ErrUserNotFound, nil)
			return nil, false
		}
		logger.Error("failed to load user: %v", err)
		response.ServerError(c.Ctx)
		return nil, false
	}
	return target, true
}

// 1. GetUsers lists every account, unapproved first.
// @Summary      List users
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/users [get]
// @Security     BearerAuth
func (c *UserAdminController) GetUsers() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	users, err := userService.GetAllUsers()
	if err != nil {
		logger.Error("failed to list users: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"users": users})
}

// 2. GetUser fetches one account with its approver and survey count.
// @Summary      Get user
// @Tags         Admin
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id} [get]
// @Security     BearerAuth
func (c *UserAdminController) GetUser() {
	id, ok := c.userID()
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserWithMeta(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Fail(c.Ctx, code.ErrUserNotFound, nil)
			return
		}
		logger.Error("failed to get user: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"user": user})
}

// 3. CreateUser creates an account on behalf of an admin. Admin-created
// accounts are approved by default and record the creating admin as
// approver. Creating admin-tier accounts requires super admin.
// @Summary      Create user
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        body body CreateUserRequest true "Profile"
// @Success      201  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /admin/users [post]
// @Security     BearerAuth
func (c *UserAdminController) CreateUser() {
	admin, ok := c.caller()
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "All fields are required", nil)
		return
	}

	role := models.Role(req.Role)
	if !role.IsValid() {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Invalid role specified", nil)
		return
	}
	if role.IsAdmin() && admin.Role != models.RoleSuperAdmin {
		response.Forbidden(c.Ctx, "Only super admin can create admin users")
		return
	}
	if !models.IsValidWardNumber(req.WardNumber) {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Ward number must be between 1 and 100", nil)
		return
	}
	if !models.IsValidLocalBody(req.LocalBody) {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Invalid local body", nil)
		return
	}
	phone, ok := models.NormalizePhone(req.Phone)
	if !ok {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Phone number must be 10 digits", nil)
		return
	}
	if len(req.Password) < 6 {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Password must be at least 6 characters long", nil)
		return
	}

	isApproved := true
	if req.IsApproved != nil {
		isApproved = *req.IsApproved
	}

	user := &models.User{
		Name:       req.Name,
		Username:   req.Username,
		Phone:      phone,
		Role:       role,
		WardNumber: req.WardNumber,
		LocalBody:  req.LocalBody,
		IsApproved: isApproved,
		ApprovedBy: &admin.ID,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateUser(user, req.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
			return
		}
		logger.Error("failed to create user: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Created(c.Ctx, gin.H{"user": user})
}

// 4. UpdateUser edits an account's profile. Touching admin-tier targets, or
// promoting into an admin tier, requires super admin; changing one's own
// role is never allowed.
// @Summary      Update user
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        body body UpdateUserRequest true "Profile"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id} [put]
// @Security     BearerAuth
func (c *UserAdminController) UpdateUser() {
	admin, ok := c.caller()
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	target, ok := c.target(userService)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "All fields are required", nil)
		return
	}

	role := models.Role(req.Role)
	if !role.IsValid() {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Invalid role specified", nil)
		return
	}
	if (target.Role.IsAdmin() || role.IsAdmin()) && admin.Role != models.RoleSuperAdmin {
		response.Forbidden(c.Ctx, "Only super admin can manage admin users")
		return
	}
	if target.ID == admin.ID && target.Role != role {
		response.FailWithMessage(c.Ctx, code.ErrSelfMutation, "Cannot change your own role", nil)
		return
	}
	if !models.IsValidWardNumber(req.WardNumber) {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Ward number must be between 1 and 100", nil)
		return
	}
	if !models.IsValidLocalBody(req.LocalBody) {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Invalid local body", nil)
		return
	}
	phone, ok := models.NormalizePhone(req.Phone)
	if !ok {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Phone number must be 10 digits", nil)
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"username":    req.Username,
		"phone":       phone,
		"role":        role,
		"ward_number": req.WardNumber,
		"local_body":  req.LocalBody,
	}
	if req.IsApproved != nil {
		updates["is_approved"] = *req.IsApproved
	}

	updated, err := userService.UpdateUser(target.ID, updates)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
			return
		}
		logger.Error("failed to update user: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"user": updated})
}

// 5. DeleteUser removes an account and its surveys. Admin-tier targets
// require super admin; self-deletion is never allowed.
// @Summary      Delete user
// @Tags         Admin
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id} [delete]
// @Security     BearerAuth
func (c *UserAdminController) DeleteUser() {
	admin, ok := c.caller()
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	target, ok := c.target(userService)
	if !ok {
		return
	}

	if target.Role.IsAdmin() && admin.Role != models.RoleSuperAdmin {
		response.Forbidden(c.Ctx, "Only super admin can delete admin users")
		return
	}
	if target.ID == admin.ID {
		response.FailWithMessage(c.Ctx, code.ErrSelfMutation, "Cannot delete your own account", nil)
		return
	}

	if err := userService.DeleteUser(target.ID); err != nil {
		logger.Error("failed to delete user: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "User deleted successfully"})
}

// 6. ApproveUser flips the approval flag, making the account usable for
// authentication, and records the approving admin.
// @Summary      Approve user
// @Tags         Admin
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id}/approve [post]
// @Security     BearerAuth
func (c *UserAdminController) ApproveUser() {
	admin, ok := c.caller()
	if !ok {
		return
	}
	id, ok := c.userID()
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	approved, err := userService.ApproveUser(id, admin.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			response.Fail(c.Ctx, code.ErrUserNotFound, nil)
		case errors.Is(err, services.ErrUserAlreadyApproved):
			response.Fail(c.Ctx, code.ErrUserAlreadyApproved, nil)
		default:
			logger.Error("failed to approve user: %v", err)
			response.ServerError(c.Ctx)
		}
		return
	}

	response.Success(c.Ctx, gin.H{
		"message": "User approved successfully",
		"user":    approved,
	})
}

// 7. UpdateRole changes an account's role. Super admin only; changing one's
// own role is never allowed.
// @Summary      Update user role
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        body body UpdateRoleRequest true "Role"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id}/role [put]
// @Security     BearerAuth
func (c *UserAdminController) UpdateRole() {
	superAdmin, ok := c.caller()
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	target, ok := c.target(userService)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Invalid role specified", nil)
		return
	}

	role := models.Role(req.Role)
	if !role.IsValid() {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Invalid role specified", nil)
		return
	}
	if target.ID == superAdmin.ID {
		response.FailWithMessage(c.Ctx, code.ErrSelfMutation, "Cannot change your own role", nil)
		return
	}

	updated, err := userService.UpdateRole(target.ID, role)
	if err != nil {
		logger.Error("failed to update role: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"message": "User role updated successfully",
		"user":    updated,
	})
}

// 8. UpdatePassword resets an account's password. Admin-tier targets
// require super admin.
// @Summary      Reset user password
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        body body UpdatePasswordRequest true "New password"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id}/password [put]
// @Security     BearerAuth
func (c *UserAdminController) UpdatePassword() {
	admin, ok := c.caller()
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	target, ok := c.target(userService)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "New password is required", nil)
		return
	}
	if len(req.NewPassword) < 6 {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Password must be at least 6 characters long", nil)
		return
	}
	if target.Role.IsAdmin() && admin.Role != models.RoleSuperAdmin {
		response.Forbidden(c.Ctx, "Only super admin can change admin passwords")
		return
	}

	if err := userService.UpdatePassword(target.ID, req.NewPassword); err != nil {
		logger.Error("failed to reset password: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "Password changed successfully"})
}
