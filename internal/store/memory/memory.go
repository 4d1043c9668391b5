// Package memory implementa un Store en memoria para desarrollo y tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/comandas/internal/store"
	"github.com/dropDatabas3/comandas/internal/store/core"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Open(_ context.Context, _ store.Config) (store.Store, error) {
	return New(), nil
}

// Mem es el Store en memoria. Seguro para uso concurrente.
type Mem struct {
	mu sync.RWMutex

	employees  map[int64]core.Employee
	categories map[int64]core.Category
	nextEmp    int64
	nextCat    int64
}

// New crea un Store vacío. Exportado para usarlo directo en tests.
func New() *Mem {
	return &Mem{
		employees:  map[int64]core.Employee{},
		categories: map[int64]core.Category{},
		nextEmp:    1,
		nextCat:    1,
	}
}

func (m *Mem) Employees() core.EmployeeRepository  { return (*empRepo)(m) }
func (m *Mem) Categories() core.CategoryRepository { return (*catRepo)(m) }
func (m *Mem) Ping(context.Context) error          { return nil }
func (m *Mem) Close() error                        { return nil }

// =================================================================================
// EMPLOYEES
// =================================================================================

type empRepo Mem

func (r *empRepo) GetByUsername(_ context.Context, username string) (*core.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.employees {
		if e.Username == username {
			cp := e
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *empRepo) GetByID(_ context.Context, id int64) (*core.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := e
	return &cp, nil
}

func (r *empRepo) Insert(_ context.Context, e *core.Employee) (*core.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.employees {
		if ex.Username == e.Username {
			return nil, core.ErrDuplicate
		}
	}
	cp := *e
	cp.ID = r.nextEmp
	r.nextEmp++
	now := time.Now()
	if cp.CreateTime.IsZero() {
		cp.CreateTime = now
	}
	if cp.UpdateTime.IsZero() {
		cp.UpdateTime = now
	}
	r.employees[cp.ID] = cp
	out := cp
	return &out, nil
}

func (r *empRepo) Update(_ context.Context, e *core.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.employees[e.ID]
	if !ok {
		return core.ErrNotFound
	}
	if e.Username != "" {
		for _, ex := range r.employees {
			if ex.ID != e.ID && ex.Username == e.Username {
				return core.ErrDuplicate
			}
		}
	}
	mergeEmployee(&cur, e)
	if e.UpdateTime.IsZero() {
		cur.UpdateTime = time.Now()
	}
	r.employees[e.ID] = cur
	return nil
}

func (r *empRepo) Page(_ context.Context, q core.PageQuery) (int64, []core.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []core.Employee
	for _, e := range r.employees {
		if q.Name != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(q.Name)) {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreateTime.Equal(all[j].CreateTime) {
			return all[i].CreateTime.After(all[j].CreateTime)
		}
		return all[i].ID > all[j].ID
	})
	return int64(len(all)), slicePage(all, q), nil
}

// mergeEmployee aplica solo los campos no-cero, como el UPDATE dinámico en SQL.
// Status usa -1 como "sin cambio" porque 0 (deshabilitado) es un valor válido.
func mergeEmployee(dst, src *core.Employee) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Username != "" {
		dst.Username = src.Username
	}
	if src.Password != "" {
		dst.Password = src.Password
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
	}
	if src.Sex != "" {
		dst.Sex = src.Sex
	}
	if src.IDNumber != "" {
		dst.IDNumber = src.IDNumber
	}
	if src.Status >= 0 {
		dst.Status = src.Status
	}
	if !src.UpdateTime.IsZero() {
		dst.UpdateTime = src.UpdateTime
	}
	if src.UpdateUser != 0 {
		dst.UpdateUser = src.UpdateUser
	}
}

// =================================================================================
// CATEGORIES
// =================================================================================

type catRepo Mem

func (r *catRepo) Insert(_ context.Context, c *core.Category) (*core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.categories {
		if ex.Name == c.Name {
			return nil, core.ErrDuplicate
		}
	}
	cp := *c
	cp.ID = r.nextCat
	r.nextCat++
	now := time.Now()
	if cp.CreateTime.IsZero() {
		cp.CreateTime = now
	}
	if cp.UpdateTime.IsZero() {
		cp.UpdateTime = now
	}
	r.categories[cp.ID] = cp
	out := cp
	return &out, nil
}

func (r *catRepo) Update(_ context.Context, c *core.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.categories[c.ID]
	if !ok {
		return core.ErrNotFound
	}
	if c.Name != "" {
		for _, ex := range r.categories {
			if ex.ID != c.ID && ex.Name == c.Name {
				return core.ErrDuplicate
			}
		}
		cur.Name = c.Name
	}
	if c.Type != 0 {
		cur.Type = c.Type
	}
	if c.Sort != 0 {
		cur.Sort = c.Sort
	}
	if c.Status >= 0 {
		cur.Status = c.Status
	}
	if c.UpdateTime.IsZero() {
		cur.UpdateTime = time.Now()
	} else {
		cur.UpdateTime = c.UpdateTime
	}
	if c.UpdateUser != 0 {
		cur.UpdateUser = c.UpdateUser
	}
	r.categories[c.ID] = cur
	return nil
}

func (r *catRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *catRepo) Page(_ context.Context, q core.PageQuery) (int64, []core.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []core.Category
	for _, c := range r.categories {
		if q.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(q.Name)) {
			continue
		}
		if q.Type != 0 && c.Type != q.Type {
			continue
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreateTime.Equal(all[j].CreateTime) {
			return all[i].CreateTime.After(all[j].CreateTime)
		}
		return all[i].ID > all[j].ID
	})
	return int64(len(all)), slicePage(all, q), nil
}

func (r *catRepo) ListByType(_ context.Context, categoryType int) ([]core.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.Category
	for _, c := range r.categories {
		if c.Status != core.StatusEnabled {
			continue
		}
		if categoryType != 0 && c.Type != categoryType {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sort != out[j].Sort {
			return out[i].Sort < out[j].Sort
		}
		return out[i].CreateTime.After(out[j].CreateTime)
	})
	return out, nil
}

func slicePage[T any](all []T, q core.PageQuery) []T {
	if q.PageSize <= 0 {
		return all
	}
	off := q.Offset()
	if off >= len(all) {
		return nil
	}
	end := off + q.PageSize
	if end > len(all) {
		end = len(all)
	}
	return append([]T(nil), all[off:end]...)
}
