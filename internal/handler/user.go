package handler

import (
	"github.com/deppfellow/placeshare/internal/lib/utils"
	"github.com/deppfellow/placeshare/internal/middleware"
	"github.com/deppfellow/placeshare/internal/model"
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/deppfellow/placeshare/internal/service"
	"github.com/deppfellow/placeshare/internal/validation"
	"github.com/labstack/echo/v4"
)

// ListUsersRequest carries no input.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return nil
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Validate normalizes the email before checking it, so surrounding
// whitespace and case never fail an otherwise valid address.
func (r *SignupRequest) Validate() error {
	r.Email = utils.NormalizeEmail(r.Email)
	return validation.Struct(r)
}

// LoginRequest is not validated: missing credentials are simply invalid
// credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	return nil
}

type UsersResponse struct {
	Users []model.UserView `json:"users"`
}

type UserResponse struct {
	User model.UserView `json:"user"`
}

type LoginResponse struct {
	Message string         `json:"message"`
	User    model.UserView `json:"user"`
}

// UserHandler serves /api/users.
type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

func (h *UserHandler) GetUsers(c echo.Context, _ *ListUsersRequest) (*UsersResponse, error) {
	users, err := h.users.GetUsers(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &UsersResponse{Users: model.NormalizeUsers(users)}, nil
}

func (h *UserHandler) Signup(c echo.Context, req *SignupRequest) (*UserResponse, error) {
	user, err := h.users.Signup(c.Request().Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	middleware.SetUserID(c, user.ID.Hex())
	return &UserResponse{User: user.Normalize()}, nil
}

func (h *UserHandler) Login(c echo.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	middleware.SetUserID(c, user.ID.Hex())
	return &LoginResponse{Message: service.MsgLoggedIn, User: user.Normalize()}, nil
}
