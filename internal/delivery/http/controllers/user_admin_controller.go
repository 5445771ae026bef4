package controllers

import (
	"log/slog"
	"net/http"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// UserAdminController serves admin user management.
type UserAdminController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserAdminController(logger *slog.Logger, svc domain.UserService) *UserAdminController {
	return &UserAdminController{Logger: logger, Service: svc}
}

// CreateUserRequest is the admin user-creation body.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (r CreateUserRequest) Validate() []string {
	var problems []string
	if r.Name == "" {
		problems = append(problems, "name is required")
	}
	if !emailRegex.MatchString(r.Email) {
		problems = append(problems, "email is invalid")
	}
	if len(r.Password) < 8 {
		problems = append(problems, "password must be at least 8 characters")
	}
	return problems
}

// Create godoc
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUserRequest true "User details"
// @Success 201 {object} helpers.APIResponse "data contains the created user"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/users [post]
func (c *UserAdminController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Create(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// List godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param ids query []int false "Restrict to these user ids"
// @Param from query int false "Zero-based offset"
// @Param size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains the user list"
// @Router /admin/users [get]
func (c *UserAdminController) List(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r, "ids")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid ids")
		return
	}
	from, size := helpers.ParsePagination(r)
	users, err := c.Service.List(r.Context(), ids, from, size)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// Delete godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userID path int true "User id"
// @Success 204 "no content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/users/{userID} [delete]
func (c *UserAdminController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.ParseID(r, "userID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}
	if err := c.Service.Delete(r.Context(), userID); err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
