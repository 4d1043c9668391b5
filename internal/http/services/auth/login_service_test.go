package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	dto "github.com/dropDatabas3/comandas/internal/http/dto/auth"
	"github.com/dropDatabas3/comandas/internal/security/password"
	"github.com/dropDatabas3/comandas/internal/security/token"
	"github.com/dropDatabas3/comandas/internal/store/core"
	"github.com/dropDatabas3/comandas/internal/store/memory"
)

func newService(t *testing.T) (LoginService, *memory.Mem) {
	t.Helper()
	mem := memory.New()
	iss, err := token.NewIssuer("itcast-super-secret-key-for-tests", 2*time.Hour, "empId")
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return NewLoginService(LoginDeps{Store: mem, Issuer: iss}), mem
}

func seedEmployee(t *testing.T, mem *memory.Mem, username, plain string, status int) *core.Employee {
	t.Helper()
	digest, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	emp, err := mem.Employees().Insert(context.Background(), &core.Employee{
		Name:     "Prueba",
		Username: username,
		Password: digest,
		Status:   status,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return emp
}

func TestLoginSuccess(t *testing.T) {
	svc, mem := newService(t)
	emp := seedEmployee(t, mem, "admin", "123456", core.StatusEnabled)

	out, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "123456"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.ID != emp.ID {
		t.Errorf("ID = %d, want %d", out.ID, emp.ID)
	}
	if out.UserName != "admin" {
		t.Errorf("UserName = %q, want admin", out.UserName)
	}
	if out.Token == "" {
		t.Error("token vacío en login exitoso")
	}

	// El token emitido debe verificar y portar el id del empleado.
	ver, err := token.NewVerifier("itcast-super-secret-key-for-tests", "empId")
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	id, err := ver.Verify(out.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != emp.ID {
		t.Errorf("claim empId = %d, want %d", id, emp.ID)
	}
}

func TestLoginAccountNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "fantasma", Password: "123456"})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mem := newService(t)
	seedEmployee(t, mem, "admin", "123456", core.StatusEnabled)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "654321"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, mem := newService(t)
	seedEmployee(t, mem, "baja", "123456", core.StatusDisabled)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "baja", Password: "123456"})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("err = %v, want ErrAccountDisabled", err)
	}
}

// El password se verifica antes que el estado: un password incorrecto sobre
// una cuenta deshabilitada no debe revelar que la cuenta está bloqueada.
func TestLoginWrongPasswordOnDisabledAccount(t *testing.T) {
	svc, mem := newService(t)
	seedEmployee(t, mem, "baja", "123456", core.StatusDisabled)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "baja", Password: "otraclave"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newService(t)

	for _, in := range []dto.LoginRequest{
		{Username: "", Password: "123456"},
		{Username: "admin", Password: ""},
		{Username: "   ", Password: "123456"},
	} {
		if _, err := svc.Login(context.Background(), in); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Login(%+v) err = %v, want ErrMissingFields", in, err)
		}
	}
}
