package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawtrack.app/triage/internal/model"
)

type healthRecordStore struct {
	pool *pgxpool.Pool
}

func newHealthRecordStore(pool *pgxpool.Pool) HealthRecordStore {
	return &healthRecordStore{pool: pool}
}

const recordColumns = `id, dog_id, type, title, description, severity, recorded_at, created_at`

func (s *healthRecordStore) GetByID(ctx context.Context, id int64) (*model.HealthRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM health_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *healthRecordStore) Create(ctx context.Context, rec *model.HealthRecord) error {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO health_records (id, dog_id, type, title, description, severity, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+recordColumns,
		rec.ID, rec.DogID, rec.Type, rec.Title, rec.Description, rec.Severity, rec.RecordedAt)
	created, err := scanRecord(row)
	if err != nil {
		return err
	}
	*rec = *created
	return nil
}

func (s *healthRecordStore) Delete(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM health_records WHERE id = $1`, id)
	return err
}

func (s *healthRecordStore) ListRecent(ctx context.Context, dogID int64, limit int32) ([]model.HealthRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM health_records
		 WHERE dog_id = $1 ORDER BY recorded_at DESC LIMIT $2`, dogID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *healthRecordStore) ListByDog(ctx context.Context, dogID int64) ([]model.HealthRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM health_records
		 WHERE dog_id = $1 ORDER BY recorded_at DESC`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]model.HealthRecord, error) {
	var records []model.HealthRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (*model.HealthRecord, error) {
	var rec model.HealthRecord
	err := row.Scan(
		&rec.ID, &rec.DogID, &rec.Type, &rec.Title,
		&rec.Description, &rec.Severity, &rec.RecordedAt, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
