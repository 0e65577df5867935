package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iPad7/gantt-4team/internal/adapter/http/dto"
	"github.com/iPad7/gantt-4team/internal/adapter/http/mapper"
	"github.com/iPad7/gantt-4team/internal/adapter/http/middleware"
	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
	"github.com/iPad7/gantt-4team/pkg/apierrors"
)

type UserHandler struct {
	userService ports.UserService
	authService ports.AuthService
}

func NewUserHandler(userService ports.UserService, authService ports.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListUsers)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItems(users))
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, middleware.GetLang(c)),
		)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), domain.CreateUserInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateUser)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToUserItem(user))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCredentials, middleware.GetLang(c)),
		)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, apierrors.MsgFailLogin)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: mapper.ToUserItem(user)})
}

// Status returns the user behind the bearer token.
func (h *UserHandler) Status(c *gin.Context) {
	actorID, _ := middleware.GetActorID(c)
	user, err := h.userService.GetUser(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListUsers)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}
