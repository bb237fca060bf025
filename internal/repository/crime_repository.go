package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crimewatch/api/internal/models"
)

var ErrCrimeNotFound = errors.New("crime not found")

type CrimeRepository struct {
	pool *pgxpool.Pool
}

func NewCrimeRepository(pool *pgxpool.Pool) *CrimeRepository {
	return &CrimeRepository{pool: pool}
}

func (r *CrimeRepository) Create(ctx context.Context, crime models.Crime) error {
	const query = `
		INSERT INTO crimes (
			id, crime_type, description, location, latitude, longitude, reported_at, status, reported_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.pool.Exec(ctx, query,
		crime.ID,
		crime.CrimeType,
		crime.Description,
		crime.Location,
		crime.Latitude,
		crime.Longitude,
		crime.ReportedAt,
		crime.Status,
		crime.ReportedBy,
	)
	return err
}

func (r *CrimeRepository) List(ctx context.Context) ([]models.Crime, error) {
	const query = `
		SELECT id, crime_type, description, location, latitude, longitude, reported_at, status, reported_by
		FROM crimes
		ORDER BY reported_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCrimes(rows)
}

func (r *CrimeRepository) GetByID(ctx context.Context, id string) (models.Crime, error) {
	const query = `
		SELECT id, crime_type, description, location, latitude, longitude, reported_at, status, reported_by
		FROM crimes WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	crime, err := scanCrime(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Crime{}, ErrCrimeNotFound
		}
		return models.Crime{}, err
	}
	return crime, nil
}

func (r *CrimeRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM crimes WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *CrimeRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	const query = `UPDATE crimes SET status = $2 WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCrimeNotFound
	}
	return nil
}

func (r *CrimeRepository) DeleteByID(ctx context.Context, id string) error {
	const query = `DELETE FROM crimes WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCrimeNotFound
	}
	return nil
}

func (r *CrimeRepository) ListByReporter(ctx context.Context, userID string) ([]models.Crime, error) {
	const query = `
		SELECT id, crime_type, description, location, latitude, longitude, reported_at, status, reported_by
		FROM crimes
		WHERE reported_by = $1
		ORDER BY reported_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCrimes(rows)
}

func scanCrime(row pgx.Row) (models.Crime, error) {
	var crime models.Crime
	err := row.Scan(
		&crime.ID,
		&crime.CrimeType,
		&crime.Description,
		&crime.Location,
		&crime.Latitude,
		&crime.Longitude,
		&crime.ReportedAt,
		&crime.Status,
		&crime.ReportedBy,
	)
	return crime, err
}

func scanCrimes(rows pgx.Rows) ([]models.Crime, error) {
	var crimes []models.Crime
	for rows.Next() {
		crime, err := scanCrime(rows)
		if err != nil {
			return nil, err
		}
		crimes = append(crimes, crime)
	}
	return crimes, rows.Err()
}
