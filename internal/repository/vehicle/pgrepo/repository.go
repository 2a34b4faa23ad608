// Package pgrepo is the relational vehicle engine. Every call is one
// statement (its own local transaction); the primary key on id backs up the
// duplicate check at the storage layer.
package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/you-humble/dealership/internal/model"
	"github.com/you-humble/dealership/internal/repository/vehicle"
)

const uniqueViolation = "23505"

type Repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *Repository) Add(ctx context.Context, v *model.Vehicle) error {
	const op = "pgrepo.Add"

	if err := v.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	q := r.sb.
		Insert("vehicles").
		Columns(vehicleColumns...).
		Values(rowFromModel(v).values()...)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w: %s", op, model.ErrDuplicate, v.ID)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*model.Vehicle, bool, error) {
	const op = "pgrepo.Get"

	q := r.sb.
		Select(vehicleColumns...).
		From("vehicles").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var row vehicleRow
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(row.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	v, err := rowToModel(row)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return v, true, nil
}

func (r *Repository) GetRequired(ctx context.Context, id string) (*model.Vehicle, error) {
	const op = "pgrepo.GetRequired"

	v, ok, err := r.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", op, model.ErrVehicleNotFound, id)
	}
	return v, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*model.Vehicle, error) {
	const op = "pgrepo.ListAll"
	return r.selectVehicles(ctx, op, r.sb.Select(vehicleColumns...).From("vehicles"))
}

func (r *Repository) Update(ctx context.Context, v *model.Vehicle) error {
	const op = "pgrepo.Update"

	if err := v.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	row := rowFromModel(v)
	set := map[string]any{
		"category":                  row.Category,
		"brand":                     row.Brand,
		"model":                     row.Model,
		"year":                      row.Year,
		"price":                     row.Price,
		"km_driven":                 row.KMDriven,
		"fuel_type":                 row.FuelType,
		"transmission":              row.Transmission,
		"owner_type":                row.OwnerType,
		"ecological_bonus_eligible": row.EcoBonus,
		"is_sold":                   row.IsSold,
		"is_available":              row.IsAvailable,
		"bike_style":                row.BikeStyle,
		"color":                     row.Color,
		"engine_cc":                 row.EngineCC,
	}

	q := r.sb.
		Update("vehicles").
		SetMap(set).
		Where(sq.Eq{"id": v.ID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w: %s", op, model.ErrVehicleNotFound, v.ID)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	const op = "pgrepo.Delete"

	q := r.sb.
		Delete("vehicles").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w: %s", op, model.ErrVehicleNotFound, id)
	}
	return nil
}

func (r *Repository) Search(ctx context.Context, criteria model.SearchCriteria) ([]*model.Vehicle, error) {
	const op = "pgrepo.Search"

	q := r.sb.Select(vehicleColumns...).From("vehicles")
	for _, c := range vehicle.ParseCriteria(criteria) {
		q = q.Where(compile(c))
	}
	return r.selectVehicles(ctx, op, q)
}

// compile translates one parsed criterion into its SQL predicate. The
// translation must agree with vehicle.Matches on membership.
func compile(c vehicle.Criterion) sq.Sqlizer {
	switch c.Op {
	case vehicle.OpSubstring:
		return sq.ILike{c.Field: "%" + escapeLike(c.Str) + "%"}
	case vehicle.OpNumEq:
		return sq.Eq{c.Field: c.Lo}
	case vehicle.OpNumRange:
		return sq.And{
			sq.GtOrEq{c.Field: c.Lo},
			sq.LtOrEq{c.Field: c.Hi},
		}
	case vehicle.OpBoolEq:
		return sq.Eq{c.Field: c.Bool}
	case vehicle.OpMaxPrice:
		return sq.LtOrEq{"price": c.Lo}
	case vehicle.OpMinYear:
		return sq.GtOrEq{"year": c.Lo}
	default:
		// Unknown ops never reach here; ParseCriteria drops them.
		return sq.Expr("TRUE")
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE pattern characters so a substring criterion
// matches them literally, the way the in-memory predicate does.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *Repository) selectVehicles(ctx context.Context, op string, q sq.SelectBuilder) ([]*model.Vehicle, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]*model.Vehicle, 0)
	for rows.Next() {
		var row vehicleRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		v, err := rowToModel(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Count reports the number of stored vehicles. Seeding uses it to keep bulk
// import a one-time operation.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	const op = "pgrepo.Count"

	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM vehicles").Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ImportBatch inserts all vehicles inside a single transaction. Used only by
// the initial bulk import.
func (r *Repository) ImportBatch(ctx context.Context, vehicles []*model.Vehicle) error {
	const op = "pgrepo.ImportBatch"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		q := r.sb.
			Insert("vehicles").
			Columns(vehicleColumns...).
			Values(rowFromModel(v).values()...)

		sqlStr, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
