// Package auth implementa la lógica de autenticación de empleados.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dto "github.com/dropDatabas3/comandas/internal/http/dto/auth"
	"github.com/dropDatabas3/comandas/internal/metrics"
	"github.com/dropDatabas3/comandas/internal/observability/logger"
	"github.com/dropDatabas3/comandas/internal/security/password"
	"github.com/dropDatabas3/comandas/internal/security/token"
	"github.com/dropDatabas3/comandas/internal/store"
	"github.com/dropDatabas3/comandas/internal/store/core"
)

// Errores de login. El controller los traduce a la taxonomía HTTP.
var (
	ErrMissingFields      = fmt.Errorf("missing required fields")
	ErrAccountNotFound    = fmt.Errorf("account not found")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrAccountDisabled    = fmt.Errorf("account disabled")
)

// LoginDeps contiene las dependencias del login service.
type LoginDeps struct {
	Store  store.Store
	Issuer *token.Issuer
}

// LoginService verifica credenciales y emite el token de sesión.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea el servicio de login.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

// Login resuelve el empleado por username, verifica el password y recién
// después el estado de la cuenta. El orden importa: un password incorrecto
// sobre una cuenta deshabilitada responde credenciales inválidas, nunca
// revela que la cuenta existe pero está bloqueada.
func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	log = log.With(logger.Username(in.Username))

	emp, err := s.deps.Store.Employees().GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			log.Info("login rechazado: cuenta inexistente")
			metrics.IncLoginAttempt("not_found")
			return nil, ErrAccountNotFound
		}
		metrics.IncLoginAttempt("error")
		return nil, fmt.Errorf("lookup employee: %w", err)
	}

	if !password.Verify(in.Password, emp.Password) {
		log.Info("login rechazado: password incorrecto", logger.EmployeeID(emp.ID))
		metrics.IncLoginAttempt("bad_password")
		return nil, ErrInvalidCredentials
	}

	if emp.Status != core.StatusEnabled {
		log.Info("login rechazado: cuenta deshabilitada", logger.EmployeeID(emp.ID))
		metrics.IncLoginAttempt("disabled")
		return nil, ErrAccountDisabled
	}

	tok, err := s.deps.Issuer.Issue(emp.ID)
	if err != nil {
		metrics.IncLoginAttempt("error")
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Info("login exitoso", logger.EmployeeID(emp.ID))
	metrics.IncLoginAttempt("ok")

	return &dto.LoginResponse{
		ID:       emp.ID,
		Name:     emp.Name,
		UserName: emp.Username,
		Token:    tok,
	}, nil
}
