package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/comandas/internal/store/core"
)

type employeeRepo struct {
	pool *pgxpool.Pool
}

const employeeColumns = `id, name, username, password, phone, sex, id_number, status,
	create_time, update_time, create_user, update_user`

func scanEmployee(row pgx.Row) (*core.Employee, error) {
	var e core.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Username, &e.Password, &e.Phone, &e.Sex, &e.IDNumber, &e.Status,
		&e.CreateTime, &e.UpdateTime, &e.CreateUser, &e.UpdateUser,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: scan employee: %w", err)
	}
	return &e, nil
}

func (r *employeeRepo) GetByUsername(ctx context.Context, username string) (*core.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employee WHERE username = $1`
	return scanEmployee(r.pool.QueryRow(ctx, query, username))
}

func (r *employeeRepo) GetByID(ctx context.Context, id int64) (*core.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employee WHERE id = $1`
	return scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepo) Insert(ctx context.Context, e *core.Employee) (*core.Employee, error) {
	const query = `
		INSERT INTO employee (name, username, password, phone, sex, id_number, status,
			create_time, update_time, create_user, update_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	cp := *e
	now := time.Now()
	if cp.CreateTime.IsZero() {
		cp.CreateTime = now
	}
	if cp.UpdateTime.IsZero() {
		cp.UpdateTime = now
	}
	err := r.pool.QueryRow(ctx, query,
		cp.Name, cp.Username, cp.Password, cp.Phone, cp.Sex, cp.IDNumber, cp.Status,
		cp.CreateTime, cp.UpdateTime, cp.CreateUser, cp.UpdateUser,
	).Scan(&cp.ID)
	if isUniqueViolation(err) {
		return nil, core.ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("pg: insert employee: %w", err)
	}
	return &cp, nil
}

// Update arma el SET dinámicamente: solo los campos informados.
// Status usa -1 como "sin cambio" porque 0 es un valor válido.
func (r *employeeRepo) Update(ctx context.Context, e *core.Employee) error {
	sets := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if e.Name != "" {
		sets = append(sets, "name = "+arg(e.Name))
	}
	if e.Username != "" {
		sets = append(sets, "username = "+arg(e.Username))
	}
	if e.Password != "" {
		sets = append(sets, "password = "+arg(e.Password))
	}
	if e.Phone != "" {
		sets = append(sets, "phone = "+arg(e.Phone))
	}
	if e.Sex != "" {
		sets = append(sets, "sex = "+arg(e.Sex))
	}
	if e.IDNumber != "" {
		sets = append(sets, "id_number = "+arg(e.IDNumber))
	}
	if e.Status >= 0 {
		sets = append(sets, "status = "+arg(e.Status))
	}
	if e.UpdateUser != 0 {
		sets = append(sets, "update_user = "+arg(e.UpdateUser))
	}
	if len(sets) == 0 {
		return nil
	}
	ut := e.UpdateTime
	if ut.IsZero() {
		ut = time.Now()
	}
	sets = append(sets, "update_time = "+arg(ut))

	query := "UPDATE employee SET " + strings.Join(sets, ", ") + " WHERE id = " + arg(e.ID)
	tag, err := r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return core.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("pg: update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *employeeRepo) Page(ctx context.Context, q core.PageQuery) (int64, []core.Employee, error) {
	where := ""
	args := []any{}
	if q.Name != "" {
		where = "WHERE name ILIKE $1"
		args = append(args, "%"+q.Name+"%")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM employee "+where, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("pg: count employees: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT "+employeeColumns+" FROM employee %s ORDER BY create_time DESC, id DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	args = append(args, q.PageSize, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("pg: page employees: %w", err)
	}
	defer rows.Close()

	var out []core.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return 0, nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("pg: page employees: %w", err)
	}
	return total, out, nil
}
