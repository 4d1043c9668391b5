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

type categoryRepo struct {
	pool *pgxpool.Pool
}

const categoryColumns = `id, type, name, sort, status,
	create_time, update_time, create_user, update_user`

func scanCategory(row pgx.Row) (*core.Category, error) {
	var c core.Category
	err := row.Scan(
		&c.ID, &c.Type, &c.Name, &c.Sort, &c.Status,
		&c.CreateTime, &c.UpdateTime, &c.CreateUser, &c.UpdateUser,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: scan category: %w", err)
	}
	return &c, nil
}

func (r *categoryRepo) Insert(ctx context.Context, c *core.Category) (*core.Category, error) {
	const query = `
		INSERT INTO category (type, name, sort, status, create_time, update_time, create_user, update_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	cp := *c
	now := time.Now()
	if cp.CreateTime.IsZero() {
		cp.CreateTime = now
	}
	if cp.UpdateTime.IsZero() {
		cp.UpdateTime = now
	}
	err := r.pool.QueryRow(ctx, query,
		cp.Type, cp.Name, cp.Sort, cp.Status, cp.CreateTime, cp.UpdateTime, cp.CreateUser, cp.UpdateUser,
	).Scan(&cp.ID)
	if isUniqueViolation(err) {
		return nil, core.ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("pg: insert category: %w", err)
	}
	return &cp, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *core.Category) error {
	sets := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if c.Name != "" {
		sets = append(sets, "name = "+arg(c.Name))
	}
	if c.Type != 0 {
		sets = append(sets, "type = "+arg(c.Type))
	}
	if c.Sort != 0 {
		sets = append(sets, "sort = "+arg(c.Sort))
	}
	if c.Status >= 0 {
		sets = append(sets, "status = "+arg(c.Status))
	}
	if c.UpdateUser != 0 {
		sets = append(sets, "update_user = "+arg(c.UpdateUser))
	}
	if len(sets) == 0 {
		return nil
	}
	ut := c.UpdateTime
	if ut.IsZero() {
		ut = time.Now()
	}
	sets = append(sets, "update_time = "+arg(ut))

	query := "UPDATE category SET " + strings.Join(sets, ", ") + " WHERE id = " + arg(c.ID)
	tag, err := r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return core.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("pg: update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM category WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("pg: delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *categoryRepo) Page(ctx context.Context, q core.PageQuery) (int64, []core.Category, error) {
	conds := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q.Name != "" {
		conds = append(conds, "name ILIKE "+arg("%"+q.Name+"%"))
	}
	if q.Type != 0 {
		conds = append(conds, "type = "+arg(q.Type))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM category "+where, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("pg: count categories: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT "+categoryColumns+" FROM category %s ORDER BY create_time DESC, id DESC LIMIT %s OFFSET %s",
		where, arg(q.PageSize), arg(q.Offset()),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("pg: page categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return 0, nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("pg: page categories: %w", err)
	}
	return total, out, nil
}

func (r *categoryRepo) ListByType(ctx context.Context, categoryType int) ([]core.Category, error) {
	conds := []string{"status = $1"}
	args := []any{core.StatusEnabled}
	if categoryType != 0 {
		conds = append(conds, "type = $2")
		args = append(args, categoryType)
	}
	query := "SELECT " + categoryColumns + " FROM category WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY sort ASC, create_time DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg: list categories: %w", err)
	}
	return out, nil
}
