package controllers

import (
	"log/slog"
	"net/http"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

type CategoryController struct {
	Logger  *slog.Logger
	Service domain.CategoryService
}

func NewCategoryController(logger *slog.Logger, svc domain.CategoryService) *CategoryController {
	return &CategoryController{Logger: logger, Service: svc}
}

// CreateCategory godoc
// @Summary Create a category
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category name"
// @Success 201 {object} domain.Category
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/categories [post]
func (c *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.Service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, cat)
}

// RenameCategory godoc
// @Summary Rename a category
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param catId path int true "Category ID"
// @Param category body CategoryRequest true "New name"
// @Success 200 {object} domain.Category
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/categories/{catId} [patch]
func (c *CategoryController) RenameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "catId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.Service.RenameCategory(r.Context(), id, req.Name)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cat)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description A category that still has events cannot be deleted.
// @Tags admin-categories
// @Security BearerAuth
// @Param catId path int true "Category ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/categories/{catId} [delete]
func (c *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "catId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if err := c.Service.DeleteCategory(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories godoc
// @Summary List categories
// @Tags public-categories
// @Produce json
// @Param from query int false "Rows to skip" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (c *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	cats, err := c.Service.ListCategories(r.Context(), page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cats)
}

// GetCategory godoc
// @Summary Get a category
// @Tags public-categories
// @Produce json
// @Param catId path int true "Category ID"
// @Success 200 {object} domain.Category
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /categories/{catId} [get]
func (c *CategoryController) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "catId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	cat, err := c.Service.GetCategory(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cat)
}
