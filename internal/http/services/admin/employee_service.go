// Package admin implementa la lógica del back-office: gestión de empleados
// y del catálogo de categorías.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	dto "github.com/dropDatabas3/comandas/internal/http/dto/admin"
	"github.com/dropDatabas3/comandas/internal/observability/logger"
	"github.com/dropDatabas3/comandas/internal/security/password"
	"github.com/dropDatabas3/comandas/internal/store"
	"github.com/dropDatabas3/comandas/internal/store/core"
)

// maskedPassword reemplaza el digest en toda respuesta que devuelve empleados.
const maskedPassword = "******"

// Errores del servicio de empleados.
var (
	ErrEmployeeMissingFields = fmt.Errorf("missing required fields")
	ErrEmployeeNotFound      = fmt.Errorf("employee not found")
	ErrUsernameTaken         = fmt.Errorf("username already taken")
	ErrInvalidStatus         = fmt.Errorf("invalid status value")
	ErrPasswordMismatch      = fmt.Errorf("old password mismatch")
)

// EmployeeDeps contiene las dependencias del servicio de empleados.
type EmployeeDeps struct {
	Store store.Store
	// DefaultPassword se asigna (hasheado) a todo empleado nuevo.
	DefaultPassword string
}

// EmployeeService expone el CRUD administrativo de empleados.
// operator es el ID del empleado autenticado que ejecuta la operación;
// alimenta los campos de auditoría create_user / update_user.
type EmployeeService interface {
	Create(ctx context.Context, in dto.CreateEmployeeRequest, operator int64) (*core.Employee, error)
	Page(ctx context.Context, q core.PageQuery) (int64, []core.Employee, error)
	SetStatus(ctx context.Context, id int64, status int, operator int64) error
	GetByID(ctx context.Context, id int64) (*core.Employee, error)
	Update(ctx context.Context, in dto.UpdateEmployeeRequest, operator int64) error
	ChangePassword(ctx context.Context, empID int64, oldPlain, newPlain string) error
}

type employeeService struct {
	deps EmployeeDeps
}

// NewEmployeeService crea el servicio de empleados.
func NewEmployeeService(deps EmployeeDeps) EmployeeService {
	return &employeeService{deps: deps}
}

func (s *employeeService) log(ctx context.Context, op string) *zap.Logger {
	return logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.employee"),
		logger.Op(op),
	)
}

func (s *employeeService) Create(ctx context.Context, in dto.CreateEmployeeRequest, operator int64) (*core.Employee, error) {
	log := s.log(ctx, "Create")

	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	if in.Username == "" || in.Name == "" {
		return nil, ErrEmployeeMissingFields
	}

	digest, err := password.Hash(s.deps.DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hash default password: %w", err)
	}

	emp, err := s.deps.Store.Employees().Insert(ctx, &core.Employee{
		Name:       in.Name,
		Username:   in.Username,
		Password:   digest,
		Phone:      in.Phone,
		Sex:        in.Sex,
		IDNumber:   in.IDNumber,
		Status:     core.StatusEnabled,
		CreateUser: operator,
		UpdateUser: operator,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	log.Info("empleado creado", logger.EmployeeID(emp.ID), logger.Username(emp.Username))
	out := *emp
	out.Password = maskedPassword
	return &out, nil
}

func (s *employeeService) Page(ctx context.Context, q core.PageQuery) (int64, []core.Employee, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 10
	}

	total, emps, err := s.deps.Store.Employees().Page(ctx, q)
	if err != nil {
		return 0, nil, fmt.Errorf("page employees: %w", err)
	}
	for i := range emps {
		emps[i].Password = maskedPassword
	}
	return total, emps, nil
}

func (s *employeeService) SetStatus(ctx context.Context, id int64, status int, operator int64) error {
	log := s.log(ctx, "SetStatus")

	if status != core.StatusEnabled && status != core.StatusDisabled {
		return ErrInvalidStatus
	}

	err := s.deps.Store.Employees().Update(ctx, &core.Employee{
		ID:         id,
		Status:     status,
		UpdateUser: operator,
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("update status: %w", err)
	}

	log.Info("status actualizado", logger.EmployeeID(id), logger.Int("status", status))
	return nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*core.Employee, error) {
	emp, err := s.deps.Store.Employees().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	out := *emp
	out.Password = maskedPassword
	return &out, nil
}

func (s *employeeService) Update(ctx context.Context, in dto.UpdateEmployeeRequest, operator int64) error {
	log := s.log(ctx, "Update")

	if in.ID == 0 {
		return ErrEmployeeMissingFields
	}

	err := s.deps.Store.Employees().Update(ctx, &core.Employee{
		ID:         in.ID,
		Name:       strings.TrimSpace(in.Name),
		Username:   strings.TrimSpace(in.Username),
		Phone:      in.Phone,
		Sex:        in.Sex,
		IDNumber:   in.IDNumber,
		Status:     core.StatusUnchanged,
		UpdateUser: operator,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return ErrEmployeeNotFound
		case errors.Is(err, core.ErrDuplicate):
			return ErrUsernameTaken
		default:
			return fmt.Errorf("update employee: %w", err)
		}
	}

	log.Info("empleado actualizado", logger.EmployeeID(in.ID))
	return nil
}

// ChangePassword cambia el password del empleado autenticado.
// Exige el password vigente; nunca opera sobre otro empleado.
func (s *employeeService) ChangePassword(ctx context.Context, empID int64, oldPlain, newPlain string) error {
	log := s.log(ctx, "ChangePassword")

	if oldPlain == "" || newPlain == "" {
		return ErrEmployeeMissingFields
	}

	emp, err := s.deps.Store.Employees().GetByID(ctx, empID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("get employee: %w", err)
	}

	if !password.Verify(oldPlain, emp.Password) {
		log.Info("cambio de password rechazado", logger.EmployeeID(empID))
		return ErrPasswordMismatch
	}

	digest, err := password.Hash(newPlain)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	err = s.deps.Store.Employees().Update(ctx, &core.Employee{
		ID:         empID,
		Password:   digest,
		Status:     core.StatusUnchanged,
		UpdateUser: empID,
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	log.Info("password actualizado", logger.EmployeeID(empID))
	return nil
}
