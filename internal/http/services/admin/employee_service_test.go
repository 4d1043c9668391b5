package admin

import (
	"context"
	"errors"
	"testing"

	dto "github.com/dropDatabas3/comandas/internal/http/dto/admin"
	"github.com/dropDatabas3/comandas/internal/security/password"
	"github.com/dropDatabas3/comandas/internal/store/core"
	"github.com/dropDatabas3/comandas/internal/store/memory"
)

func newEmployeeService(t *testing.T) (EmployeeService, *memory.Mem) {
	t.Helper()
	mem := memory.New()
	return NewEmployeeService(EmployeeDeps{Store: mem, DefaultPassword: "123456"}), mem
}

func TestEmployeeCreateAssignsDefaultPassword(t *testing.T) {
	svc, mem := newEmployeeService(t)

	emp, err := svc.Create(context.Background(), dto.CreateEmployeeRequest{
		Name: "Zhang San", Username: "zhangsan", Phone: "13800001111",
	}, 7)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if emp.Password != "******" {
		t.Errorf("Password en respuesta = %q, debe venir enmascarado", emp.Password)
	}
	if emp.Status != core.StatusEnabled {
		t.Errorf("Status = %d, want habilitado", emp.Status)
	}
	if emp.CreateUser != 7 || emp.UpdateUser != 7 {
		t.Errorf("auditoría = (%d, %d), want (7, 7)", emp.CreateUser, emp.UpdateUser)
	}

	// El digest persistido debe verificar contra el password por defecto.
	stored, err := mem.Employees().GetByID(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !password.Verify("123456", stored.Password) {
		t.Error("el password por defecto no verifica contra el digest persistido")
	}
}

func TestEmployeeCreateDuplicateUsername(t *testing.T) {
	svc, _ := newEmployeeService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, dto.CreateEmployeeRequest{Name: "A", Username: "dup"}, 1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, dto.CreateEmployeeRequest{Name: "B", Username: "dup"}, 1)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestEmployeeUpdateUsernameTaken(t *testing.T) {
	svc, _ := newEmployeeService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, dto.CreateEmployeeRequest{Name: "A", Username: "alice"}, 1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	bob, err := svc.Create(ctx, dto.CreateEmployeeRequest{Name: "B", Username: "bob"}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = svc.Update(ctx, dto.UpdateEmployeeRequest{ID: bob.ID, Username: "alice"}, 1)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestEmployeeSetStatus(t *testing.T) {
	svc, mem := newEmployeeService(t)
	ctx := context.Background()

	emp, err := svc.Create(ctx, dto.CreateEmployeeRequest{Name: "A", Username: "a"}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.SetStatus(ctx, emp.ID, core.StatusDisabled, 1); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	stored, _ := mem.Employees().GetByID(ctx, emp.ID)
	if stored.Status != core.StatusDisabled {
		t.Errorf("Status = %d, want deshabilitado", stored.Status)
	}

	if err := svc.SetStatus(ctx, emp.ID, 5, 1); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("SetStatus(5) err = %v, want ErrInvalidStatus", err)
	}
	if err := svc.SetStatus(ctx, 999, core.StatusEnabled, 1); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("SetStatus(999) err = %v, want ErrEmployeeNotFound", err)
	}
}

func TestEmployeeUpdateKeepsStatusAndPassword(t *testing.T) {
	svc, mem := newEmployeeService(t)
	ctx := context.Background()

	emp, err := svc.Create(ctx, dto.CreateEmployeeRequest{Name: "A", Username: "a"}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.SetStatus(ctx, emp.ID, core.StatusDisabled, 1); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if err := svc.Update(ctx, dto.UpdateEmployeeRequest{ID: emp.ID, Name: "Renombrado"}, 2); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stored, _ := mem.Employees().GetByID(ctx, emp.ID)
	if stored.Name != "Renombrado" {
		t.Errorf("Name = %q, want Renombrado", stored.Name)
	}
	// 0 (deshabilitado) es un estado válido: un update de perfil no lo pisa.
	if stored.Status != core.StatusDisabled {
		t.Errorf("Status = %d, el update de perfil no debe cambiar el estado", stored.Status)
	}
	if !password.Verify("123456", stored.Password) {
		t.Error("el update de perfil no debe tocar el password")
	}
	if stored.UpdateUser != 2 {
		t.Errorf("UpdateUser = %d, want 2", stored.UpdateUser)
	}
}

func TestEmployeeGetByIDMasksPassword(t *testing.T) {
	svc, _ := newEmployeeService(t)
	ctx := context.Background()

	emp, err := svc.Create(ctx, dto.CreateEmployeeRequest{Name: "A", Username: "a"}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.GetByID(ctx, emp.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Password != "******" {
		t.Errorf("Password = %q, debe venir enmascarado", got.Password)
	}

	if _, err := svc.GetByID(ctx, 999); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("GetByID(999) err = %v, want ErrEmployeeNotFound", err)
	}
}

func TestEmployeeChangePassword(t *testing.T) {
	svc, mem := newEmployeeService(t)
	ctx := context.Background()

	emp, err := svc.Create(ctx, dto.CreateEmployeeRequest{Name: "A", Username: "a"}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.ChangePassword(ctx, emp.ID, "incorrecta", "nueva123"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("err = %v, want ErrPasswordMismatch", err)
	}

	if err := svc.ChangePassword(ctx, emp.ID, "123456", "nueva123"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	stored, _ := mem.Employees().GetByID(ctx, emp.ID)
	if !password.Verify("nueva123", stored.Password) {
		t.Error("el password nuevo no verifica")
	}
	if password.Verify("123456", stored.Password) {
		t.Error("el password viejo sigue verificando")
	}
}

func TestEmployeePagePagination(t *testing.T) {
	svc, _ := newEmployeeService(t)
	ctx := context.Background()

	for _, u := range []string{"ana", "bruno", "carla"} {
		if _, err := svc.Create(ctx, dto.CreateEmployeeRequest{Name: u, Username: u}, 1); err != nil {
			t.Fatalf("Create(%s): %v", u, err)
		}
	}

	total, emps, err := svc.Page(ctx, core.PageQuery{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(emps) != 2 {
		t.Errorf("len(records) = %d, want 2", len(emps))
	}
	for _, e := range emps {
		if e.Password != "******" {
			t.Errorf("Password de %s = %q, debe venir enmascarado", e.Username, e.Password)
		}
	}

	total, emps, err = svc.Page(ctx, core.PageQuery{Page: 1, PageSize: 10, Name: "ru"})
	if err != nil {
		t.Fatalf("Page(name=ru): %v", err)
	}
	if total != 1 || len(emps) != 1 || emps[0].Username != "bruno" {
		t.Errorf("filtro por nombre: total=%d records=%v", total, emps)
	}
}
