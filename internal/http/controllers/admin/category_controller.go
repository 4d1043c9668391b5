package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/comandas/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/comandas/internal/http/errors"
	"github.com/dropDatabas3/comandas/internal/http/helpers"
	svc "github.com/dropDatabas3/comandas/internal/http/services/admin"
	"github.com/dropDatabas3/comandas/internal/store/core"
)

// CategoryController maneja el CRUD del catálogo de categorías.
type CategoryController struct {
	service svc.CategoryService
}

// NewCategoryController crea el controller de categorías.
func NewCategoryController(service svc.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

// Create maneja POST /admin/category.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	op, ok := operator(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	var req dto.CreateCategoryRequest
	if err := helpers.ReadJSON(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON.WithDetail(err.Error()))
		return
	}

	cat, err := c.service.Create(r.Context(), req, op)
	if err != nil {
		writeCategoryError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, cat)
}

// Page maneja GET /admin/category/page?page=&pageSize=&name=&type=.
func (c *CategoryController) Page(w http.ResponseWriter, r *http.Request) {
	q := core.PageQuery{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", 10),
		Name:     r.URL.Query().Get("name"),
		Type:     queryInt(r, "type", 0),
	}

	total, cats, err := c.service.Page(r.Context(), q)
	if err != nil {
		writeCategoryError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.PageResult{Total: total, Records: cats})
}

// SetStatus maneja POST /admin/category/status/{status}?id=.
func (c *CategoryController) SetStatus(w http.ResponseWriter, r *http.Request) {
	op, ok := operator(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	status, err := strconv.Atoi(chi.URLParam(r, "status"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("status debe ser numérico"))
		return
	}
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("id inválido"))
		return
	}

	if err := c.service.SetStatus(r.Context(), id, status, op); err != nil {
		writeCategoryError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

// Update maneja PUT /admin/category.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	op, ok := operator(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := helpers.ReadJSON(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON.WithDetail(err.Error()))
		return
	}

	if err := c.service.Update(r.Context(), req, op); err != nil {
		writeCategoryError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

// Delete maneja DELETE /admin/category?id=.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("id inválido"))
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		writeCategoryError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

// List maneja GET /admin/category/list?type=.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	cats, err := c.service.ListByType(r.Context(), queryInt(r, "type", 0))
	if err != nil {
		writeCategoryError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, cats)
}

func writeCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrCategoryMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)
	case errors.Is(err, svc.ErrCategoryNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("la categoría no existe"))
	case errors.Is(err, svc.ErrCategoryNameTaken):
		httperrors.WriteError(w, httperrors.ErrAlreadyExists.WithDetail("el nombre de categoría ya está en uso"))
	case errors.Is(err, svc.ErrInvalidCategoryType):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("type debe ser 1 (platos) o 2 (menús)"))
	case errors.Is(err, svc.ErrInvalidStatus):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("status debe ser 0 o 1"))
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
