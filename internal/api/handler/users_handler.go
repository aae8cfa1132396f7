package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cvds/identity-service/internal/core/domain"
	"github.com/cvds/identity-service/internal/core/ports"
)

type UsersHandler struct {
	userService ports.UserService
}

func NewUsersHandler(userService ports.UserService) *UsersHandler {
	return &UsersHandler{userService: userService}
}

// Get returns a user by id with the password hash redacted.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UsersHandler) Get(c echo.Context) error {
	user, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// GetByUsername returns a user by username with the password hash redacted.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  dataResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /users/username/{username} [get]
func (h *UsersHandler) GetByUsername(c echo.Context) error {
	user, err := h.userService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// Create registers a new user. Admin only.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newUserRequest  true  "New user"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UsersHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req newUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Request().Context(), domain.NewUser{
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}, session)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dataResponse{Data: user})
}

// Update applies a partial update to a user. Self or admin.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users [patch]
func (h *UsersHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var role *domain.Role
	if req.Role != nil {
		r := domain.Role(*req.Role)
		role = &r
	}

	user, err := h.userService.Update(c.Request().Context(), domain.UserUpdate{
		ID:       req.ID,
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	}, session)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// Delete removes a user and returns the deleted record. Self or admin.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UsersHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Delete(c.Request().Context(), c.Param("id"), session)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Data: user})
}
