package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jashanpj/janasampark/internal/app/middleware"
	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/domain/services"
	"github.com/jashanpj/janasampark/internal/domain/services/container"
	"github.com/jashanpj/janasampark/internal/error/code"
	"github.com/jashanpj/janasampark/internal/error/response"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
	"github.com/jashanpj/janasampark/pkg/logger"
)

// AuthController handles login, registration and session inspection.
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates a new auth controller.
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"Secret1"`
}

// RegisterRequest is the self-service registration payload.
type RegisterRequest struct {
	Name       string `json:"name" binding:"required" example:"Alice Thomas"`
	Username   string `json:"username" binding:"required" example:"alice"`
	Password   string `json:"password" binding:"required" example:"Secret1"`
	Phone      string `json:"phone" binding:"required" example:"9876543210"`
	Role       string `json:"role" binding:"required" example:"WARD_MEMBER"`
	WardNumber int    `json:"ward_number" binding:"required" example:"5"`
	LocalBody  string `json:"local_body" binding:"required" example:"N.Paravur"`
}

// HandleAuthFunc returns a gin handler dispatching to the auth controller.
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "register":
			controller.Register()
		case "me":
			controller.Me()
		case "logout":
			controller.Logout()
		case "test":
			controller.Test()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// setAuthCookie installs the session cookie: HttpOnly, SameSite=Lax,
// root-scoped, development posture (Secure off).
func (c *AuthController) setAuthCookie(token string, lifetime time.Duration) {
	c.Ctx.SetSameSite(http.SameSiteLaxMode)
	c.Ctx.SetCookie(middleware.AuthCookieName, token, int(lifetime.Seconds()), "/", "", false, true)
}

// 1. Login authenticates a username/password pair.
// @Summary      Log in
// @Description  Authenticates credentials, returns an identity summary and sets the session cookie
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Username and password are required", nil)
		return
	}

	rateLimitService := c.Container.GetService("rate_limit").(services.InterfaceRateLimitService)
	clientIP := c.Ctx.ClientIP()
	if !rateLimitService.AllowLoginAttempt(clientIP) {
		response.Fail(c.Ctx, code.ErrTooManyRequests, nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Unknown username and wrong password are indistinguishable
			// here to avoid username enumeration.
			rateLimitService.RecordFailedLogin(clientIP)
			response.Fail(c.Ctx, code.ErrInvalidCredentials, nil)
			return
		}
		logger.Error("login failed: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	rateLimitService.ResetLoginAttempts(clientIP)

	cfg := c.Container.GetService("config").(*config.Config)
	c.setAuthCookie(result.Token, cfg.TokenLifetime)

	response.Success(c.Ctx, gin.H{
		"user": gin.H{
			"id":          result.UserID,
			"name":        result.Name,
			"username":    result.Username,
			"role":        result.Role,
			"is_approved": result.IsApproved,
			"ward_number": result.WardNumber,
			"local_body":  result.LocalBody,
		},
		"token": result.Token,
	})
}

// 2. Register creates a new unapproved account.
// @Summary      Register
// @Description  Creates a new field worker account, pending admin approval
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body RegisterRequest true "Profile"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "All fields are required", nil)
		return
	}

	role := models.Role(req.Role)
	if !role.IsValid() || !role.IsRegistrable() {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "Invalid role specified", nil)
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

	user := &models.User{
		Name:       req.Name,
		Username:   req.Username,
		Phone:      phone,
		Role:       role,
		WardNumber: req.WardNumber,
		LocalBody:  req.LocalBody,
		IsApproved: false,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateUser(user, req.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
			return
		}
		logger.Error("registration failed: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Created(c.Ctx, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"username":    user.Username,
			"role":        user.Role,
			"ward_number": user.WardNumber,
			"local_body":  user.LocalBody,
			"created_at":  user.CreatedAt,
		},
	})
}

// 3. Me returns the account behind the caller's session token.
// @Summary      Current identity
// @Description  Resolves the session cookie to the live account
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (c *AuthController) Me() {
	token := middleware.ExtractToken(c.Ctx)
	if token == "" {
		response.Unauthorized(c.Ctx)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	user, err := jwtService.ResolveUser(token)
	if err != nil {
		if errors.Is(err, services.ErrNoSession) {
			response.Unauthorized(c.Ctx)
			return
		}
		logger.Error("identity check failed: %v", err)
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"user": user})
}

// 4. Logout clears the session cookie. Tokens are stateless, so this is
// purely a client-side discard.
// @Summary      Log out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (c *AuthController) Logout() {
	middleware.ClearAuthCookie(c.Ctx)
	response.Success(c.Ctx, gin.H{"message": "Logged out"})
}

// 5. Test is a connectivity probe for clients.
// @Summary      Auth connectivity probe
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/test [get]
func (c *AuthController) Test() {
	response.Success(c.Ctx, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
