package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/charityhub/charityhub/internal/domain/cause"
	"github.com/charityhub/charityhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CausesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCausesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CausesRepo {
	return &CausesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *CausesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *CausesRepo) Create(ctx context.Context, req cause.CreateCauseRequest) (cause.Cause, error) {
	c := cause.NewFromCreateRequest(req)

	err := r.observe("causes.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO causes (id, title, description, image, goal, raised, date, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.ID, c.Title, c.Description, c.Image, c.Goal, c.Raised, c.Date, c.CreatedAt, c.UpdatedAt,
		)
		return e
	})

	if err != nil {
		return cause.Cause{}, err
	}

	return c, nil
}

func (r *CausesRepo) List(ctx context.Context) ([]cause.Cause, error) {
	var out []cause.Cause

	err := r.observe("causes.list", func() error {
		rows, e := r.pool.Query(ctx,
			`SELECT id, title, description, image, goal, raised, date, created_at, updated_at
			 FROM causes
			 ORDER BY created_at DESC`,
		)

		if e != nil {
			return e
		}

		defer rows.Close()

		out = make([]cause.Cause, 0)

		for rows.Next() {
			var c cause.Cause

			e = rows.Scan(&c.ID, &c.Title, &c.Description, &c.Image, &c.Goal, &c.Raised, &c.Date, &c.CreatedAt, &c.UpdatedAt)

			if e != nil {
				return e
			}

			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *CausesRepo) GetByID(ctx context.Context, id string) (cause.Cause, error) {
	var c cause.Cause

	err := r.observe("causes.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, description, image, goal, raised, date, created_at, updated_at
			 FROM causes
			 WHERE id = $1`,
			id,
		).Scan(&c.ID, &c.Title, &c.Description, &c.Image, &c.Goal, &c.Raised, &c.Date, &c.CreatedAt, &c.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cause.Cause{}, cause.ErrNotFound
		}

		return cause.Cause{}, err
	}

	return c, nil
}

// Upsert implements PUT semantics: update the row when it exists, otherwise
// insert it under the given id.
func (r *CausesRepo) Upsert(ctx context.Context, id string, req cause.UpdateCauseRequest) (cause.Cause, error) {
	now := time.Now().UTC()

	var c cause.Cause

	err := r.observe("causes.upsert", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO causes (id, title, description, image, goal, raised, date, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			 ON CONFLICT (id) DO UPDATE
			 SET title = EXCLUDED.title,
			     description = EXCLUDED.description,
			     image = EXCLUDED.image,
			     goal = EXCLUDED.goal,
			     raised = EXCLUDED.raised,
			     updated_at = EXCLUDED.updated_at
			 RETURNING id, title, description, image, goal, raised, date, created_at, updated_at`,
			id, req.Title, req.Description, req.Image, req.Goal, req.Raised, now.Format(cause.DateLayout), now,
		).Scan(&c.ID, &c.Title, &c.Description, &c.Image, &c.Goal, &c.Raised, &c.Date, &c.CreatedAt, &c.UpdatedAt)
	})

	if err != nil {
		return cause.Cause{}, err
	}

	return c, nil
}

func (r *CausesRepo) Delete(ctx context.Context, id string) error {
	var affected int64

	err := r.observe("causes.delete", func() error {
		tag, e := r.pool.Exec(ctx, `DELETE FROM causes WHERE id = $1`, id)

		if e != nil {
			return e
		}

		affected = tag.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return cause.ErrNotFound
	}

	return nil
}
