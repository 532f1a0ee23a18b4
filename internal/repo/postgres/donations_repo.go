package postgres

import (
	"context"

	"github.com/charityhub/charityhub/internal/domain/donation"
	"github.com/charityhub/charityhub/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DonationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewDonationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *DonationsRepo {
	return &DonationsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *DonationsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *DonationsRepo) Create(ctx context.Context, req donation.CreateDonationRequest) (donation.Donation, error) {
	d := donation.NewFromCreateRequest(req)

	err := r.observe("donations.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO donations (id, cause_id, name, email, amount, date, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, d.CauseID, d.Name, d.Email, d.Amount, d.Date, d.CreatedAt,
		)
		return e
	})

	if err != nil {
		return donation.Donation{}, err
	}

	return d, nil
}

func (r *DonationsRepo) List(ctx context.Context) ([]donation.Donation, error) {
	var out []donation.Donation

	err := r.observe("donations.list", func() error {
		rows, e := r.pool.Query(ctx,
			`SELECT id, cause_id, name, email, amount, date, created_at
			 FROM donations
			 ORDER BY created_at DESC`,
		)

		if e != nil {
			return e
		}

		defer rows.Close()

		out = make([]donation.Donation, 0)

		for rows.Next() {
			var d donation.Donation

			e = rows.Scan(&d.ID, &d.CauseID, &d.Name, &d.Email, &d.Amount, &d.Date, &d.CreatedAt)

			if e != nil {
				return e
			}

			out = append(out, d)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
