package controllers

import (
	"log/slog"
	"net/http"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// CategoryController serves public category reads and admin category CRUD.
type CategoryController struct {
	Logger  *slog.Logger
	Service domain.CategoryService
}

func NewCategoryController(logger *slog.Logger, svc domain.CategoryService) *CategoryController {
	return &CategoryController{Logger: logger, Service: svc}
}

// CategoryRequest is the request body for category create and update.
type CategoryRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (r CategoryRequest) Validate() []string {
	if r.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param from query int false "Zero-based offset"
// @Param size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains the category list"
// @Router /categories [get]
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	from, size := helpers.ParsePagination(r)
	categories, err := c.Service.List(r.Context(), from, size)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}

// Get godoc
// @Summary Get a category by id
// @Tags categories
// @Produce json
// @Param catID path int true "Category id"
// @Success 200 {object} helpers.APIResponse "data contains the category"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /categories/{catID} [get]
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	catID, ok := helpers.ParseID(r, "catID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid catID")
		return
	}
	category, err := c.Service.Get(r.Context(), catID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, category)
}

// Create godoc
// @Summary Create a category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CategoryRequest true "Category name"
// @Success 201 {object} helpers.APIResponse "data contains the created category"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/categories [post]
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	category, err := c.Service.Create(r.Context(), req.Name)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, category)
}

// Update godoc
// @Summary Rename a category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param catID path int true "Category id"
// @Param body body CategoryRequest true "New name"
// @Success 200 {object} helpers.APIResponse "data contains the updated category"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/categories/{catID} [patch]
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	catID, ok := helpers.ParseID(r, "catID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid catID")
		return
	}
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	category, err := c.Service.Update(r.Context(), catID, req.Name)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Description Refused while events reference the category.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param catID path int true "Category id"
// @Success 204 "no content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/categories/{catID} [delete]
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	catID, ok := helpers.ParseID(r, "catID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid catID")
		return
	}
	if err := c.Service.Delete(r.Context(), catID); err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
