package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/comandas/internal/store/core"
)

func TestEmployeeInsertAssignsSequentialIDs(t *testing.T) {
	m := New()
	ctx := context.Background()

	a, err := m.Employees().Insert(ctx, &core.Employee{Username: "a", Name: "A"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	b, err := m.Employees().Insert(ctx, &core.Employee{Username: "b", Name: "B"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if a.ID != 1 || b.ID != 2 {
		t.Errorf("ids = (%d, %d), want (1, 2)", a.ID, b.ID)
	}
	if a.CreateTime.IsZero() || a.UpdateTime.IsZero() {
		t.Error("Insert debe estampar create_time y update_time")
	}
}

func TestEmployeeInsertDuplicateUsername(t *testing.T) {
	m := New()
	ctx := context.Background()

	if _, err := m.Employees().Insert(ctx, &core.Employee{Username: "dup"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := m.Employees().Insert(ctx, &core.Employee{Username: "dup"}); !errors.Is(err, core.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

// Renombrar el username al de otro empleado debe fallar igual que el
// UNIQUE de SQL, sin tocar el registro.
func TestEmployeeUpdateUsernameCollision(t *testing.T) {
	m := New()
	ctx := context.Background()

	a, err := m.Employees().Insert(ctx, &core.Employee{Username: "alice"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	b, err := m.Employees().Insert(ctx, &core.Employee{Username: "bob"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err = m.Employees().Update(ctx, &core.Employee{
		ID: b.ID, Username: a.Username, Status: core.StatusUnchanged,
	})
	if !errors.Is(err, core.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}

	got, _ := m.Employees().GetByID(ctx, b.ID)
	if got.Username != "bob" {
		t.Errorf("Username = %q, el update rechazado no debe persistir", got.Username)
	}

	// Mandar el propio username no es colisión.
	err = m.Employees().Update(ctx, &core.Employee{
		ID: b.ID, Username: "bob", Status: core.StatusUnchanged,
	})
	if err != nil {
		t.Fatalf("Update con username propio: %v", err)
	}
}

func TestCategoryUpdateNameCollision(t *testing.T) {
	m := New()
	ctx := context.Background()

	if _, err := m.Categories().Insert(ctx, &core.Category{Name: "Sopas", Type: core.CategoryTypeDish}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	combos, err := m.Categories().Insert(ctx, &core.Category{Name: "Combos", Type: core.CategoryTypeSetmeal})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err = m.Categories().Update(ctx, &core.Category{
		ID: combos.ID, Name: "Sopas", Status: core.StatusUnchanged,
	})
	if !errors.Is(err, core.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

// El update parcial con Status = -1 no debe pisar un estado deshabilitado.
func TestEmployeeUpdateStatusSentinel(t *testing.T) {
	m := New()
	ctx := context.Background()

	emp, err := m.Employees().Insert(ctx, &core.Employee{
		Username: "a", Name: "A", Status: core.StatusDisabled,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err = m.Employees().Update(ctx, &core.Employee{
		ID: emp.ID, Name: "Renombrado", Status: core.StatusUnchanged,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := m.Employees().GetByID(ctx, emp.ID)
	if got.Status != core.StatusDisabled {
		t.Errorf("Status = %d, el centinela no debe tocar el estado", got.Status)
	}
	if got.Name != "Renombrado" {
		t.Errorf("Name = %q, want Renombrado", got.Name)
	}

	// Y Status = 0 explícito sí persiste.
	if err := m.Employees().Update(ctx, &core.Employee{ID: emp.ID, Status: core.StatusEnabled}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := m.Employees().Update(ctx, &core.Employee{ID: emp.ID, Status: core.StatusDisabled}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = m.Employees().GetByID(ctx, emp.ID)
	if got.Status != core.StatusDisabled {
		t.Errorf("Status = %d, want deshabilitado", got.Status)
	}
}

func TestEmployeePageOrdersNewestFirst(t *testing.T) {
	m := New()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, u := range []string{"viejo", "medio", "nuevo"} {
		_, err := m.Employees().Insert(ctx, &core.Employee{
			Username:   u,
			Name:       u,
			CreateTime: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Insert(%s): %v", u, err)
		}
	}

	total, emps, err := m.Employees().Page(ctx, core.PageQuery{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(emps) != 2 || emps[0].Username != "nuevo" || emps[1].Username != "medio" {
		t.Errorf("página = %v, want [nuevo medio]", emps)
	}

	_, emps, err = m.Employees().Page(ctx, core.PageQuery{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("Page(2): %v", err)
	}
	if len(emps) != 1 || emps[0].Username != "viejo" {
		t.Errorf("página 2 = %v, want [viejo]", emps)
	}

	_, emps, _ = m.Employees().Page(ctx, core.PageQuery{Page: 9, PageSize: 2})
	if len(emps) != 0 {
		t.Errorf("página fuera de rango = %v, want vacía", emps)
	}
}

func TestCategoryListByTypeOrdersBySort(t *testing.T) {
	m := New()
	ctx := context.Background()

	for _, c := range []core.Category{
		{Name: "Tercera", Type: core.CategoryTypeDish, Sort: 3, Status: core.StatusEnabled},
		{Name: "Primera", Type: core.CategoryTypeDish, Sort: 1, Status: core.StatusEnabled},
		{Name: "Oculta", Type: core.CategoryTypeDish, Sort: 2, Status: core.StatusDisabled},
		{Name: "Combo", Type: core.CategoryTypeSetmeal, Sort: 1, Status: core.StatusEnabled},
	} {
		if _, err := m.Categories().Insert(ctx, &c); err != nil {
			t.Fatalf("Insert(%s): %v", c.Name, err)
		}
	}

	cats, err := m.Categories().ListByType(ctx, core.CategoryTypeDish)
	if err != nil {
		t.Fatalf("ListByType: %v", err)
	}
	if len(cats) != 2 || cats[0].Name != "Primera" || cats[1].Name != "Tercera" {
		t.Errorf("cats = %v, want [Primera Tercera]", cats)
	}

	// type 0 = todas las habilitadas.
	cats, err = m.Categories().ListByType(ctx, 0)
	if err != nil {
		t.Fatalf("ListByType(0): %v", err)
	}
	if len(cats) != 3 {
		t.Errorf("len = %d, want 3", len(cats))
	}
}

func TestCategoryDelete(t *testing.T) {
	m := New()
	ctx := context.Background()

	cat, err := m.Categories().Insert(ctx, &core.Category{Name: "Sopas", Type: core.CategoryTypeDish})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := m.Categories().Delete(ctx, cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Categories().Delete(ctx, cat.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
