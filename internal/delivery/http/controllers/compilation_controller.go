package controllers

import (
	"log/slog"
	"net/http"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

type CompilationController struct {
	Logger  *slog.Logger
	Service domain.CompilationService
}

func NewCompilationController(logger *slog.Logger, svc domain.CompilationService) *CompilationController {
	return &CompilationController{Logger: logger, Service: svc}
}

// CreateCompilation godoc
// @Summary Create a compilation
// @Tags admin-compilations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param compilation body NewCompilationRequest true "Title, pinned flag and event IDs"
// @Success 201 {object} controllers.CompilationDTO
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/compilations [post]
func (c *CompilationController) CreateCompilation(w http.ResponseWriter, r *http.Request) {
	var req NewCompilationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	comp, err := c.Service.CreateCompilation(r.Context(), domain.NewCompilationInput{
		Title:    req.Title,
		Pinned:   req.Pinned,
		EventIDs: req.Events,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toCompilation(comp))
}

// UpdateCompilation godoc
// @Summary Edit a compilation
// @Description Partial update. events, when present, replaces the whole event set.
// @Tags admin-compilations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param compId path int true "Compilation ID"
// @Param compilation body UpdateCompilationRequest true "Changed fields"
// @Success 200 {object} controllers.CompilationDTO
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/compilations/{compId} [patch]
func (c *CompilationController) UpdateCompilation(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "compId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	var req UpdateCompilationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	comp, err := c.Service.UpdateCompilation(r.Context(), id, domain.UpdateCompilationInput{
		Title:    req.Title,
		Pinned:   req.Pinned,
		EventIDs: req.Events,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toCompilation(comp))
}

// DeleteCompilation godoc
// @Summary Delete a compilation
// @Tags admin-compilations
// @Security BearerAuth
// @Param compId path int true "Compilation ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/compilations/{compId} [delete]
func (c *CompilationController) DeleteCompilation(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "compId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if err := c.Service.DeleteCompilation(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCompilations godoc
// @Summary List compilations
// @Tags public-compilations
// @Produce json
// @Param pinned query bool false "Only pinned or only unpinned"
// @Param from query int false "Rows to skip" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} controllers.CompilationDTO
// @Router /compilations [get]
func (c *CompilationController) ListCompilations(w http.ResponseWriter, r *http.Request) {
	pinned, err := helpers.QueryBool(r, "pinned")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	page, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	comps, err := c.Service.ListCompilations(r.Context(), pinned, page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	out := make([]CompilationDTO, 0, len(comps))
	for _, comp := range comps {
		out = append(out, toCompilation(comp))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// GetCompilation godoc
// @Summary Get a compilation
// @Tags public-compilations
// @Produce json
// @Param compId path int true "Compilation ID"
// @Success 200 {object} controllers.CompilationDTO
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /compilations/{compId} [get]
func (c *CompilationController) GetCompilation(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "compId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	comp, err := c.Service.GetCompilation(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toCompilation(comp))
}
