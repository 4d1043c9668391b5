// Package auth contiene los controllers de autenticación de empleados.
package auth

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/comandas/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/comandas/internal/http/errors"
	"github.com/dropDatabas3/comandas/internal/http/helpers"
	svc "github.com/dropDatabas3/comandas/internal/http/services/auth"
	"github.com/dropDatabas3/comandas/internal/observability/logger"
)

// LoginController maneja login y logout de empleados.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController crea el controller de login.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login maneja POST /admin/employee/login.
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if err := helpers.ReadJSON(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON.WithDetail(err.Error()))
		return
	}

	out, err := c.service.Login(ctx, req)
	if err != nil {
		log.Debug("login fallido", logger.Err(err))
		writeLoginError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Logout maneja POST /admin/employee/logout.
// Los tokens son stateless: el logout es responsabilidad del cliente
// (descartar el token); el servidor solo confirma.
func (c *LoginController) Logout(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "sesión cerrada"})
}

func writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("username y password son obligatorios"))
	case errors.Is(err, svc.ErrAccountNotFound):
		httperrors.WriteError(w, httperrors.ErrAccountNotFound)
	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
	case errors.Is(err, svc.ErrAccountDisabled):
		httperrors.WriteError(w, httperrors.ErrAccountDisabled)
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
