// Package repository persists farm registrations in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agriportal_backend/platform/apperr"
)

const farmNotFoundMessage = "farm not found"

// Farm is the persistence model for a registered farm.
type Farm struct {
	ID          uuid.UUID
	FarmerName  string
	Village     string
	District    string
	State       string
	Pincode     string
	AreaAcres   float64
	PrimaryCrop string
	Phone       string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repository is the farms persistence contract.
type Repository interface {
	Create(ctx context.Context, farm Farm) (Farm, error)
	GetByID(ctx context.Context, id uuid.UUID) (Farm, error)
	List(ctx context.Context) ([]Farm, error)
	Update(ctx context.Context, farm Farm) (Farm, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new farms repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const farmColumns = `id, farmer_name, village, district, state, pincode, area_acres, primary_crop, phone, email, created_at, updated_at`

// Create inserts a new farm and returns it with generated fields populated.
func (r *Repo) Create(ctx context.Context, farm Farm) (Farm, error) {
	query := `
		INSERT INTO farms (id, farmer_name, village, district, state, pincode, area_acres, primary_crop, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + farmColumns

	row := r.pool.QueryRow(ctx, query,
		farm.ID, farm.FarmerName, farm.Village, farm.District, farm.State,
		farm.Pincode, farm.AreaAcres, farm.PrimaryCrop, farm.Phone, farm.Email,
	)

	created, err := scanFarm(row)
	if err != nil {
		return Farm{}, fmt.Errorf("create farm: %w", err)
	}
	return created, nil
}

// GetByID retrieves a single farm.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE id = $1`

	farm, err := scanFarm(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Farm{}, apperr.NotFound(farmNotFoundMessage)
		}
		return Farm{}, fmt.Errorf("get farm by id: %w", err)
	}
	return farm, nil
}

// List retrieves all farms, newest first.
func (r *Repo) List(ctx context.Context) ([]Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	defer rows.Close()

	var farms []Farm
	for rows.Next() {
		farm, err := scanFarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan farm: %w", err)
		}
		farms = append(farms, farm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	return farms, nil
}

// Update rewrites every mutable column of a farm.
func (r *Repo) Update(ctx context.Context, farm Farm) (Farm, error) {
	query := `
		UPDATE farms
		SET farmer_name = $2, village = $3, district = $4, state = $5, pincode = $6,
		    area_acres = $7, primary_crop = $8, phone = $9, email = $10, updated_at = now()
		WHERE id = $1
		RETURNING ` + farmColumns

	row := r.pool.QueryRow(ctx, query,
		farm.ID, farm.FarmerName, farm.Village, farm.District, farm.State,
		farm.Pincode, farm.AreaAcres, farm.PrimaryCrop, farm.Phone, farm.Email,
	)

	updated, err := scanFarm(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Farm{}, apperr.NotFound(farmNotFoundMessage)
		}
		return Farm{}, fmt.Errorf("update farm: %w", err)
	}
	return updated, nil
}

// Delete removes a farm.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM farms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete farm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(farmNotFoundMessage)
	}
	return nil
}

func scanFarm(row pgx.Row) (Farm, error) {
	var farm Farm
	err := row.Scan(
		&farm.ID, &farm.FarmerName, &farm.Village, &farm.District, &farm.State,
		&farm.Pincode, &farm.AreaAcres, &farm.PrimaryCrop, &farm.Phone, &farm.Email,
		&farm.CreatedAt, &farm.UpdatedAt,
	)
	return farm, err
}
