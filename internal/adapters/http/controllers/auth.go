package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweetshop/api/internal/adapters/http/handlers"
	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/dto"
	"github.com/sweetshop/api/internal/core/service"
	"github.com/sweetshop/api/internal/core/serviceerrors"
)

type AuthController struct {
	authService *service.AuthService
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        string(user.ID),
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary     Register a user
// @Description Creates an account and returns an access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     dto.RegisterRequest true "Registration data"
// @Success     201     {object} AuthResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Router      /api/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var request dto.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	token, user, err := ac.authService.Register(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: NewUserResponse(user)})
}

// Login godoc
// @Summary     Log in
// @Description Exchanges credentials for an access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     dto.LoginRequest true "Credentials"
// @Success     200     {object} AuthResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Router      /api/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	token, user, err := ac.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: NewUserResponse(user)})
}
