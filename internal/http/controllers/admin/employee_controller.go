// Package admin contiene los controllers del back-office.
package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authdto "github.com/dropDatabas3/comandas/internal/http/dto/auth"
	dto "github.com/dropDatabas3/comandas/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/comandas/internal/http/errors"
	"github.com/dropDatabas3/comandas/internal/http/helpers"
	"github.com/dropDatabas3/comandas/internal/http/middlewares"
	svc "github.com/dropDatabas3/comandas/internal/http/services/admin"
	"github.com/dropDatabas3/comandas/internal/store/core"
)

// EmployeeController maneja el CRUD administrativo de empleados.
type EmployeeController struct {
	service svc.EmployeeService
}

// NewEmployeeController crea el controller de empleados.
func NewEmployeeController(service svc.EmployeeService) *EmployeeController {
	return &EmployeeController{service: service}
}

// operator saca el ID del empleado autenticado del contexto.
// El gate ya corrió: si no está, es un bug de wiring.
func operator(r *http.Request) (int64, bool) {
	return middlewares.GetEmployeeID(r.Context())
}

// Create maneja POST /admin/employee.
func (c *EmployeeController) Create(w http.ResponseWriter, r *http.Request) {
	op, ok := operator(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	var req dto.CreateEmployeeRequest
	if err := helpers.ReadJSON(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON.WithDetail(err.Error()))
		return
	}

	emp, err := c.service.Create(r.Context(), req, op)
	if err != nil {
		writeEmployeeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, emp)
}

// Page maneja GET /admin/employee/page?page=&pageSize=&name=.
func (c *EmployeeController) Page(w http.ResponseWriter, r *http.Request) {
	q := core.PageQuery{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", 10),
		Name:     r.URL.Query().Get("name"),
	}

	total, emps, err := c.service.Page(r.Context(), q)
	if err != nil {
		writeEmployeeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.PageResult{Total: total, Records: emps})
}

// SetStatus maneja POST /admin/employee/status/{status}?id=.
func (c *EmployeeController) SetStatus(w http.ResponseWriter, r *http.Request) {
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
		writeEmployeeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

// GetByID maneja GET /admin/employee/{id}.
func (c *EmployeeController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("id inválido"))
		return
	}

	emp, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeEmployeeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, emp)
}

// Update maneja PUT /admin/employee.
func (c *EmployeeController) Update(w http.ResponseWriter, r *http.Request) {
	op, ok := operator(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := helpers.ReadJSON(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON.WithDetail(err.Error()))
		return
	}

	if err := c.service.Update(r.Context(), req, op); err != nil {
		writeEmployeeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

// EditPassword maneja PUT /admin/employee/editPassword.
// Opera siempre sobre el empleado autenticado.
func (c *EmployeeController) EditPassword(w http.ResponseWriter, r *http.Request) {
	op, ok := operator(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	var req authdto.ChangePasswordRequest
	if err := helpers.ReadJSON(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON.WithDetail(err.Error()))
		return
	}

	if err := c.service.ChangePassword(r.Context(), op, req.OldPassword, req.NewPassword); err != nil {
		writeEmployeeError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func writeEmployeeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrEmployeeMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)
	case errors.Is(err, svc.ErrEmployeeNotFound):
		httperrors.WriteError(w, httperrors.ErrAccountNotFound)
	case errors.Is(err, svc.ErrUsernameTaken):
		httperrors.WriteError(w, httperrors.ErrAlreadyExists.WithDetail("el username ya está en uso"))
	case errors.Is(err, svc.ErrInvalidStatus):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("status debe ser 0 o 1"))
	case errors.Is(err, svc.ErrPasswordMismatch):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

// queryInt lee un parámetro numérico del query string con fallback.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
